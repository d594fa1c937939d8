package anomaly

import (
	"math"
	"time"

	"github.com/ledgersense/ledgersense/internal/model"
)

// Config holds the scorer's thresholds and rule weights. The defaults
// are tuned values carried over from production use; retune only against
// labeled data, since they shift anomaly sensitivity directly.
type Config struct {
	// HomeCurrency is the currency that does not trigger the foreign
	// currency rule.
	HomeCurrency string

	// ZHigh and ZMed are the category z-score thresholds.
	ZHigh float64
	ZMed  float64

	// Velocity5mCount and Velocity1mCount are the trailing-window
	// transaction counts that trigger the velocity rule.
	Velocity5mCount int
	Velocity1mCount int

	// DuplicateWindow bounds how far back a near-duplicate may sit.
	DuplicateWindow time.Duration

	// RareBucketMax is the histogram count at or below which an hour or
	// weekday counts as rare.
	RareBucketMax int
	// BigAmountMultiplier scales the category median into the "big
	// amount" threshold for the rarity rules.
	BigAmountMultiplier float64
	// BigAmountFallback is the flat threshold used when the category
	// median is zero.
	BigAmountFallback float64

	// MinHistory is the minimum number of prior samples required before
	// scoring runs at all.
	MinHistory int

	// Rule weights.
	WeightCategorySpikeHigh int
	WeightCategorySpikeMed  int
	WeightOverallSpike      int
	WeightTypeSpike         int
	WeightVelocity          int
	WeightDuplicate         int
	WeightOddHour           int
	WeightOddDow            int
	WeightForeignCurrency   int

	// MaxScore caps the summed weights.
	MaxScore int

	// SeverityHigh and SeverityMed are the score thresholds for the
	// severity tiers.
	SeverityHigh int
	SeverityMed  int
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		HomeCurrency:            "INR",
		ZHigh:                   5.0,
		ZMed:                    3.0,
		Velocity5mCount:         3,
		Velocity1mCount:         2,
		DuplicateWindow:         120 * time.Second,
		RareBucketMax:           1,
		BigAmountMultiplier:     1.5,
		BigAmountFallback:       1500.0,
		MinHistory:              10,
		WeightCategorySpikeHigh: 40,
		WeightCategorySpikeMed:  20,
		WeightOverallSpike:      15,
		WeightTypeSpike:         10,
		WeightVelocity:          30,
		WeightDuplicate:         25,
		WeightOddHour:           15,
		WeightOddDow:            10,
		WeightForeignCurrency:   10,
		MaxScore:                100,
		SeverityHigh:            60,
		SeverityMed:             30,
	}
}

// Scorer evaluates a new transaction against robust baselines and recent
// history. It is stateless and safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given configuration.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes a risk assessment for the current transaction. It
// returns nil when no rule fires, which is distinct from a low-score
// assessment. currency may be empty, meaning the home currency.
//
// Callers must supply at least MinHistory prior samples; with fewer the
// baselines are not stable and Score returns nil. A non-finite amount
// also yields nil.
func (s *Scorer) Score(current model.Transaction, currency string, history []model.Transaction, profile *model.AnalyticsProfile) *model.RiskAssessment {
	if len(history) < s.cfg.MinHistory || profile == nil || !isFinite(current.Amount) {
		return nil
	}

	score := 0
	var reasons []model.ReasonCode

	catStats := s.statsOrOverall(profile.ByCategory[model.NormalizeCategory(current.Category)], profile)
	typeStats := s.statsOrOverall(profile.ByType[current.Type], profile)

	// Amount spikes against the category, overall, and type baselines.
	zCat := madZ(current.Amount, catStats.Median, catStats.MAD)
	switch {
	case zCat >= s.cfg.ZHigh:
		score += s.cfg.WeightCategorySpikeHigh
		reasons = append(reasons, model.ReasonAmountSpikeCategory)
	case zCat >= s.cfg.ZMed:
		score += s.cfg.WeightCategorySpikeMed
		reasons = append(reasons, model.ReasonAmountHighCategory)
	}

	if madZ(current.Amount, profile.Overall.Median, profile.Overall.MAD) >= s.cfg.ZMed {
		score += s.cfg.WeightOverallSpike
		reasons = append(reasons, model.ReasonAmountHighOverall)
	}

	if madZ(current.Amount, typeStats.Median, typeStats.MAD) >= s.cfg.ZMed {
		score += s.cfg.WeightTypeSpike
		reasons = append(reasons, model.ReasonAmountHighType)
	}

	// Velocity and near-duplicates over strictly earlier transactions.
	count5m, count1m, duplicate := s.trailingWindowCounts(current, history)
	if count5m >= s.cfg.Velocity5mCount || count1m >= s.cfg.Velocity1mCount {
		score += s.cfg.WeightVelocity
		reasons = append(reasons, model.ReasonVelocity)
	}
	if duplicate {
		score += s.cfg.WeightDuplicate
		reasons = append(reasons, model.ReasonNearDuplicate)
	}

	// Large amounts at historically rare hours or weekdays.
	bigAmount := s.cfg.BigAmountFallback
	if catStats.Median > 0 {
		bigAmount = catStats.Median * s.cfg.BigAmountMultiplier
	}
	if profile.HourHist[current.Date.Hour()] <= s.cfg.RareBucketMax && current.Amount >= bigAmount {
		score += s.cfg.WeightOddHour
		reasons = append(reasons, model.ReasonOddHourBigAmount)
	}
	if profile.DowHist[int(current.Date.Weekday())] <= s.cfg.RareBucketMax && current.Amount >= bigAmount {
		score += s.cfg.WeightOddDow
		reasons = append(reasons, model.ReasonOddDowBigAmount)
	}

	if currency != "" && currency != s.cfg.HomeCurrency {
		score += s.cfg.WeightForeignCurrency
		reasons = append(reasons, model.ReasonForeignCurrency)
	}

	if len(reasons) == 0 {
		return nil
	}

	if score > s.cfg.MaxScore {
		score = s.cfg.MaxScore
	}

	return &model.RiskAssessment{
		Score:    score,
		Severity: s.severity(score),
		Reasons:  reasons,
	}
}

// statsOrOverall falls back to the overall baseline when a partition has
// no data, keeping the partition's sample count at zero.
func (s *Scorer) statsOrOverall(stats model.Stats, profile *model.AnalyticsProfile) model.Stats {
	if stats.N == 0 {
		return model.Stats{
			Median: profile.Overall.Median,
			MAD:    profile.Overall.MAD,
			N:      0,
		}
	}
	return stats
}

// trailingWindowCounts counts strictly earlier transactions inside the
// 5-minute and 1-minute windows and detects near-duplicates.
func (s *Scorer) trailingWindowCounts(current model.Transaction, history []model.Transaction) (count5m, count1m int, duplicate bool) {
	for _, h := range history {
		diff := current.Date.Sub(h.Date)
		if diff <= 0 {
			continue
		}
		if diff <= 5*time.Minute {
			count5m++
		}
		if diff <= time.Minute {
			count1m++
		}
		if diff <= s.cfg.DuplicateWindow &&
			h.Amount == current.Amount &&
			model.NormalizeCategory(h.Category) == model.NormalizeCategory(current.Category) &&
			h.Type == current.Type {
			duplicate = true
		}
	}
	return count5m, count1m, duplicate
}

func (s *Scorer) severity(score int) model.Severity {
	switch {
	case score >= s.cfg.SeverityHigh:
		return model.SeverityHigh
	case score >= s.cfg.SeverityMed:
		return model.SeverityMed
	default:
		return model.SeverityLow
	}
}

// madZ is the robust z-score |x - median| / mad. The MAD is the raw,
// floor-guarded value, not scaled by the 1.4826 consistency constant.
func madZ(x, med, mad float64) float64 {
	if mad <= 0 {
		return 0
	}
	return math.Abs(x-med) / mad
}
