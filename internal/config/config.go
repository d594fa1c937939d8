// Package config loads engine settings from viper, layering config file
// and environment values over the built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgersense/ledgersense/internal/anomaly"
	"github.com/ledgersense/ledgersense/internal/classify"
	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/spf13/viper"
)

// Settings is the resolved application configuration.
type Settings struct {
	// DatabasePath is the SQLite database location.
	DatabasePath string
	// HistoryWindow bounds how many recent transactions feed the
	// statistics builder.
	HistoryWindow int
	Classifier    classify.Config
	Anomaly       anomaly.Config
}

// SetDefaults registers every tunable with its production default so a
// bare install works without a config file. The classifier and scorer
// thresholds are deliberately configuration, not code constants: they
// are ad hoc tuned values, and retuning them must not require a rebuild.
func SetDefaults() {
	viper.SetDefault("database.path", defaultDatabasePath())
	viper.SetDefault("engine.history_window", 200)

	cc := classify.DefaultConfig()
	viper.SetDefault("classifier.sim_cutoff", cc.SimCutoff)
	viper.SetDefault("classifier.exact_bonus", cc.ExactBonus)
	viper.SetDefault("classifier.phrase_weight", cc.PhraseWeight)
	viper.SetDefault("classifier.top_k", cc.TopK)
	viper.SetDefault("classifier.min_best_score", cc.MinBestScore)
	viper.SetDefault("classifier.min_margin", cc.MinMargin)
	viper.SetDefault("classifier.min_confidence", cc.MinConfidence)
	viper.SetDefault("classifier.learn_min_similarity", cc.LearnMinSimilarity)
	viper.SetDefault("classifier.learn_cross_category_ceiling", cc.LearnCrossCategoryCeiling)
	viper.SetDefault("classifier.learn_max_keyword_length", cc.LearnMaxKeywordLength)

	ac := anomaly.DefaultConfig()
	viper.SetDefault("anomaly.home_currency", ac.HomeCurrency)
	viper.SetDefault("anomaly.z_high", ac.ZHigh)
	viper.SetDefault("anomaly.z_med", ac.ZMed)
	viper.SetDefault("anomaly.velocity_5m_count", ac.Velocity5mCount)
	viper.SetDefault("anomaly.velocity_1m_count", ac.Velocity1mCount)
	viper.SetDefault("anomaly.duplicate_window", ac.DuplicateWindow)
	viper.SetDefault("anomaly.rare_bucket_max", ac.RareBucketMax)
	viper.SetDefault("anomaly.big_amount_multiplier", ac.BigAmountMultiplier)
	viper.SetDefault("anomaly.big_amount_fallback", ac.BigAmountFallback)
	viper.SetDefault("anomaly.min_history", ac.MinHistory)
	viper.SetDefault("anomaly.weight_category_spike_high", ac.WeightCategorySpikeHigh)
	viper.SetDefault("anomaly.weight_category_spike_med", ac.WeightCategorySpikeMed)
	viper.SetDefault("anomaly.weight_overall_spike", ac.WeightOverallSpike)
	viper.SetDefault("anomaly.weight_type_spike", ac.WeightTypeSpike)
	viper.SetDefault("anomaly.weight_velocity", ac.WeightVelocity)
	viper.SetDefault("anomaly.weight_duplicate", ac.WeightDuplicate)
	viper.SetDefault("anomaly.weight_odd_hour", ac.WeightOddHour)
	viper.SetDefault("anomaly.weight_odd_dow", ac.WeightOddDow)
	viper.SetDefault("anomaly.weight_foreign_currency", ac.WeightForeignCurrency)
	viper.SetDefault("anomaly.max_score", ac.MaxScore)
	viper.SetDefault("anomaly.severity_high", ac.SeverityHigh)
	viper.SetDefault("anomaly.severity_med", ac.SeverityMed)
}

// Load resolves Settings from viper's current state. SetDefaults must
// have run first.
func Load() (*Settings, error) {
	cc := classify.DefaultConfig()
	cc.SimCutoff = viper.GetFloat64("classifier.sim_cutoff")
	cc.ExactBonus = viper.GetFloat64("classifier.exact_bonus")
	cc.PhraseWeight = viper.GetFloat64("classifier.phrase_weight")
	cc.TopK = viper.GetInt("classifier.top_k")
	cc.MinBestScore = viper.GetFloat64("classifier.min_best_score")
	cc.MinMargin = viper.GetFloat64("classifier.min_margin")
	cc.MinConfidence = viper.GetFloat64("classifier.min_confidence")
	cc.LearnMinSimilarity = viper.GetFloat64("classifier.learn_min_similarity")
	cc.LearnCrossCategoryCeiling = viper.GetFloat64("classifier.learn_cross_category_ceiling")
	cc.LearnMaxKeywordLength = viper.GetInt("classifier.learn_max_keyword_length")

	ac := anomaly.DefaultConfig()
	ac.HomeCurrency = viper.GetString("anomaly.home_currency")
	ac.ZHigh = viper.GetFloat64("anomaly.z_high")
	ac.ZMed = viper.GetFloat64("anomaly.z_med")
	ac.Velocity5mCount = viper.GetInt("anomaly.velocity_5m_count")
	ac.Velocity1mCount = viper.GetInt("anomaly.velocity_1m_count")
	ac.DuplicateWindow = viper.GetDuration("anomaly.duplicate_window")
	ac.RareBucketMax = viper.GetInt("anomaly.rare_bucket_max")
	ac.BigAmountMultiplier = viper.GetFloat64("anomaly.big_amount_multiplier")
	ac.BigAmountFallback = viper.GetFloat64("anomaly.big_amount_fallback")
	ac.MinHistory = viper.GetInt("anomaly.min_history")
	ac.WeightCategorySpikeHigh = viper.GetInt("anomaly.weight_category_spike_high")
	ac.WeightCategorySpikeMed = viper.GetInt("anomaly.weight_category_spike_med")
	ac.WeightOverallSpike = viper.GetInt("anomaly.weight_overall_spike")
	ac.WeightTypeSpike = viper.GetInt("anomaly.weight_type_spike")
	ac.WeightVelocity = viper.GetInt("anomaly.weight_velocity")
	ac.WeightDuplicate = viper.GetInt("anomaly.weight_duplicate")
	ac.WeightOddHour = viper.GetInt("anomaly.weight_odd_hour")
	ac.WeightOddDow = viper.GetInt("anomaly.weight_odd_dow")
	ac.WeightForeignCurrency = viper.GetInt("anomaly.weight_foreign_currency")
	ac.MaxScore = viper.GetInt("anomaly.max_score")
	ac.SeverityHigh = viper.GetInt("anomaly.severity_high")
	ac.SeverityMed = viper.GetInt("anomaly.severity_med")

	s := &Settings{
		DatabasePath:  viper.GetString("database.path"),
		HistoryWindow: viper.GetInt("engine.history_window"),
		Classifier:    cc,
		Anomaly:       ac,
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.DatabasePath == "" {
		return fmt.Errorf("%w: database.path must not be empty", common.ErrMissingConfig)
	}
	if s.HistoryWindow <= 0 {
		return fmt.Errorf("%w: engine.history_window must be positive, got %d", common.ErrInvalidConfig, s.HistoryWindow)
	}
	if s.Anomaly.MinHistory < 1 {
		return fmt.Errorf("%w: anomaly.min_history must be at least 1, got %d", common.ErrInvalidConfig, s.Anomaly.MinHistory)
	}
	if s.Classifier.TopK < 1 {
		return fmt.Errorf("%w: classifier.top_k must be at least 1, got %d", common.ErrInvalidConfig, s.Classifier.TopK)
	}
	return nil
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ledgersense.db"
	}
	return filepath.Join(home, ".local", "share", "ledgersense", "ledgersense.db")
}
