// Package anomaly builds robust statistical baselines from transaction
// history and scores new transactions against them.
package anomaly

import (
	"math"
	"sort"

	"github.com/ledgersense/ledgersense/internal/model"
)

// madFloor guards every z-score division. A MAD computed as zero or
// negative (one sample, or identical amounts) is reported as 1.0.
const madFloor = 1.0

// BuildProfile computes median/MAD baselines per category, per type, and
// overall, plus hour-of-day and day-of-week histograms, from the given
// history window. Day-of-week buckets follow time.Weekday: 0=Sunday.
//
// It is a pure function of its input and recomputes from scratch on
// every call; the caller bounds the window size. Non-finite amounts
// (NaN, Inf) are skipped.
func BuildProfile(history []model.Transaction) *model.AnalyticsProfile {
	overall := make([]float64, 0, len(history))
	byCategory := make(map[string][]float64)
	byType := make(map[model.TransactionType][]float64)

	profile := &model.AnalyticsProfile{
		ByCategory: make(map[string]model.Stats),
		ByType:     make(map[model.TransactionType]model.Stats),
	}

	for _, tx := range history {
		if !isFinite(tx.Amount) {
			continue
		}
		cat := model.NormalizeCategory(tx.Category)

		overall = append(overall, tx.Amount)
		byCategory[cat] = append(byCategory[cat], tx.Amount)
		byType[tx.Type] = append(byType[tx.Type], tx.Amount)

		profile.HourHist[tx.Date.Hour()]++
		profile.DowHist[int(tx.Date.Weekday())]++
	}

	for cat, amounts := range byCategory {
		profile.ByCategory[cat] = computeStats(amounts)
	}
	for typ, amounts := range byType {
		profile.ByType[typ] = computeStats(amounts)
	}
	profile.Overall = computeStats(overall)

	return profile
}

// computeStats returns the median/MAD baseline for one partition.
func computeStats(amounts []float64) model.Stats {
	if len(amounts) == 0 {
		return model.Stats{Median: 0, MAD: madFloor, N: 0}
	}
	med := median(amounts)
	return model.Stats{
		Median: med,
		MAD:    mad(amounts, med),
		N:      len(amounts),
	}
}

// median returns the middle value, averaging the two central values for
// even-sized input. The input slice is not modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}

// mad returns the median absolute deviation from med, floored at
// madFloor. Deliberately unscaled: no 1.4826 normal-consistency factor,
// so z-scores keep parity with the historical baselines.
func mad(values []float64, med float64) float64 {
	if len(values) == 0 {
		return madFloor
	}
	dev := make([]float64, len(values))
	for i, v := range values {
		dev[i] = math.Abs(v - med)
	}
	m := median(dev)
	if m <= 0 {
		return madFloor
	}
	return m
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
