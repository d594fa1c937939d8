package model

// Stats is a robust amount baseline for one partition of the history.
type Stats struct {
	// Median of the partition's amounts.
	Median float64
	// MAD is the median absolute deviation, floored at 1.0 so callers
	// can divide by it. The floor means "no spread" reports as 1.0.
	MAD float64
	// N is the number of samples behind the baseline.
	N int
}

// AnalyticsProfile holds the robust baselines and temporal histograms
// derived from a bounded transaction history window. It is recomputed
// fresh on every scoring pass; the engine keeps no state between calls.
type AnalyticsProfile struct {
	ByCategory map[string]Stats
	ByType     map[TransactionType]Stats
	Overall    Stats
	// HourHist counts transactions per hour of day, 0-23.
	HourHist [24]int
	// DowHist counts transactions per day of week, 0=Sunday..6=Saturday.
	DowHist [7]int
}

// Severity is the coarse risk tier derived from the numeric score.
type Severity string

const (
	// SeverityLow marks scores below 30.
	SeverityLow Severity = "low"
	// SeverityMed marks scores from 30 to 59.
	SeverityMed Severity = "med"
	// SeverityHigh marks scores of 60 and above.
	SeverityHigh Severity = "high"
)

// ReasonCode identifies a single anomaly rule that fired. Downstream
// layers map codes to user-facing text; the engine never emits free text.
type ReasonCode string

const (
	// ReasonAmountSpikeCategory fires when the category z-score is extreme.
	ReasonAmountSpikeCategory ReasonCode = "amount_spike_category"
	// ReasonAmountHighCategory fires on a moderate category z-score.
	ReasonAmountHighCategory ReasonCode = "amount_high_category"
	// ReasonAmountHighOverall fires on a high z-score against all history.
	ReasonAmountHighOverall ReasonCode = "amount_high_overall"
	// ReasonAmountHighType fires on a high z-score against the same type.
	ReasonAmountHighType ReasonCode = "amount_high_type"
	// ReasonVelocity fires on a burst of transactions in a short window.
	ReasonVelocity ReasonCode = "velocity"
	// ReasonNearDuplicate fires on a matching transaction moments earlier.
	ReasonNearDuplicate ReasonCode = "near_duplicate"
	// ReasonOddHourBigAmount fires on a large amount at a rare hour.
	ReasonOddHourBigAmount ReasonCode = "odd_hour_big_amount"
	// ReasonOddDowBigAmount fires on a large amount on a rare weekday.
	ReasonOddDowBigAmount ReasonCode = "odd_dow_big_amount"
	// ReasonForeignCurrency fires when the currency is not the home one.
	ReasonForeignCurrency ReasonCode = "foreign_currency"
)

// RiskAssessment is the scorer's verdict for one new transaction.
// A nil *RiskAssessment means no rule fired at all, which is distinct
// from a low-score assessment.
type RiskAssessment struct {
	Severity Severity     `json:"severity"`
	Reasons  []ReasonCode `json:"reasons"`
	// Score is the summed rule weights, capped at 100.
	Score int `json:"score"`
}
