package config

import (
	"testing"

	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 200, s.HistoryWindow)
	assert.Equal(t, "INR", s.Anomaly.HomeCurrency)
	assert.InDelta(t, 5.0, s.Anomaly.ZHigh, 1e-12)
	assert.InDelta(t, 0.80, s.Classifier.SimCutoff, 1e-12)
	assert.Equal(t, 10, s.Anomaly.MinHistory)
	assert.Equal(t, 40, s.Anomaly.WeightCategorySpikeHigh)
	assert.Equal(t, 100, s.Anomaly.MaxScore)
	assert.NotEmpty(t, s.DatabasePath)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	SetDefaults()
	viper.Set("anomaly.z_high", 6.5)
	viper.Set("anomaly.weight_velocity", 45)
	viper.Set("engine.history_window", 50)

	s, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 6.5, s.Anomaly.ZHigh, 1e-12)
	assert.Equal(t, 45, s.Anomaly.WeightVelocity)
	assert.Equal(t, 50, s.HistoryWindow)
}

func TestLoadRejectsInvalid(t *testing.T) {
	viper.Reset()
	SetDefaults()
	viper.Set("engine.history_window", 0)

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadRejectsMissingDatabasePath(t *testing.T) {
	viper.Reset()
	SetDefaults()
	viper.Set("database.path", "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
