package anomaly

import (
	"math"
	"testing"
	"time"

	"github.com/ledgersense/ledgersense/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txAt(amount float64, category string, typ model.TransactionType, date time.Time) model.Transaction {
	return model.Transaction{
		Amount:   amount,
		Category: category,
		Type:     typ,
		Date:     date,
	}
}

func TestBuildProfileMedianAndMADFloor(t *testing.T) {
	base := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	history := []model.Transaction{
		txAt(100, "Groceries", model.TypeExpense, base),
		txAt(100, "Groceries", model.TypeExpense, base.Add(time.Hour)),
		txAt(100, "Groceries", model.TypeExpense, base.Add(2*time.Hour)),
		txAt(500, "Groceries", model.TypeExpense, base.Add(3*time.Hour)),
	}

	profile := BuildProfile(history)

	stats, ok := profile.ByCategory["Groceries"]
	require.True(t, ok)
	assert.InDelta(t, 100.0, stats.Median, 1e-9)
	// Deviations are [0,0,0,400]; their median is 0, floored to 1.0.
	assert.InDelta(t, 1.0, stats.MAD, 1e-9)
	assert.Equal(t, 4, stats.N)
}

func TestBuildProfileOddSampleCount(t *testing.T) {
	base := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	history := []model.Transaction{
		txAt(100, "Travel", model.TypeExpense, base),
		txAt(300, "Travel", model.TypeExpense, base),
		txAt(700, "Travel", model.TypeExpense, base),
	}

	profile := BuildProfile(history)

	stats := profile.ByCategory["Travel"]
	assert.InDelta(t, 300.0, stats.Median, 1e-9)
	// Deviations are [200,0,400]; their median is 200.
	assert.InDelta(t, 200.0, stats.MAD, 1e-9)
}

func TestBuildProfilePartitions(t *testing.T) {
	base := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	history := []model.Transaction{
		txAt(100, "Groceries", model.TypeExpense, base),
		txAt(50000, "", model.TypeIncome, base),
	}

	profile := BuildProfile(history)

	// Blank categories normalize to the default.
	assert.Contains(t, profile.ByCategory, model.DefaultCategory)
	assert.Equal(t, 1, profile.ByType[model.TypeIncome].N)
	assert.Equal(t, 1, profile.ByType[model.TypeExpense].N)
	assert.Equal(t, 2, profile.Overall.N)
	assert.InDelta(t, 25050.0, profile.Overall.Median, 1e-9)
}

func TestBuildProfileHistograms(t *testing.T) {
	// 2024-03-10 is a Sunday.
	sunday := time.Date(2024, 3, 10, 23, 15, 0, 0, time.UTC)
	monday := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	history := []model.Transaction{
		txAt(10, "Travel", model.TypeExpense, sunday),
		txAt(20, "Travel", model.TypeExpense, sunday.Add(10*time.Minute)),
		txAt(30, "Travel", model.TypeExpense, monday),
	}

	profile := BuildProfile(history)

	assert.Equal(t, 2, profile.HourHist[23])
	assert.Equal(t, 1, profile.HourHist[9])
	assert.Equal(t, 2, profile.DowHist[0]) // Sunday
	assert.Equal(t, 1, profile.DowHist[1]) // Monday
}

func TestBuildProfileSkipsNonFiniteAmounts(t *testing.T) {
	base := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	history := []model.Transaction{
		txAt(100, "Travel", model.TypeExpense, base),
		txAt(math.NaN(), "Travel", model.TypeExpense, base),
		txAt(math.Inf(1), "Travel", model.TypeExpense, base),
	}

	profile := BuildProfile(history)

	assert.Equal(t, 1, profile.Overall.N)
	assert.Equal(t, 1, profile.ByCategory["Travel"].N)
}

func TestBuildProfileEmptyHistory(t *testing.T) {
	profile := BuildProfile(nil)

	assert.Zero(t, profile.Overall.N)
	assert.InDelta(t, madFloor, profile.Overall.MAD, 1e-9)
	assert.Empty(t, profile.ByCategory)
}
