package engine

import (
	"context"
	"testing"
	"time"

	"github.com/ledgersense/ledgersense/internal/anomaly"
	"github.com/ledgersense/ledgersense/internal/classify"
	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/ledgersense/ledgersense/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStorage is an in-memory Storage for engine tests.
type mockStorage struct {
	learned      map[string][]string
	transactions []model.Transaction
	riskEvents   []string
}

func newMockStorage() *mockStorage {
	return &mockStorage{learned: make(map[string][]string)}
}

func (m *mockStorage) SaveTransaction(_ context.Context, tx model.Transaction) (string, error) {
	id := tx.ID
	if id == "" {
		id = tx.GenerateHash()
	}
	tx.ID = id
	m.transactions = append(m.transactions, tx)
	return id, nil
}

func (m *mockStorage) GetRecentTransactions(_ context.Context, limit int) ([]model.Transaction, error) {
	if len(m.transactions) <= limit {
		return append([]model.Transaction(nil), m.transactions...), nil
	}
	return append([]model.Transaction(nil), m.transactions[len(m.transactions)-limit:]...), nil
}

func (m *mockStorage) SaveLearnedKeywords(_ context.Context, category string, keywords []string) error {
	m.learned[category] = append(m.learned[category], keywords...)
	return nil
}

func (m *mockStorage) GetLearnedKeywords(_ context.Context) (map[string][]string, error) {
	return m.learned, nil
}

func (m *mockStorage) SaveRiskEvent(_ context.Context, transactionID string, _ *model.RiskAssessment) (int64, error) {
	m.riskEvents = append(m.riskEvents, transactionID)
	return int64(len(m.riskEvents)), nil
}

func newTestEngine(store Storage) *Engine {
	return New(store,
		classify.New(classify.DefaultConfig()),
		anomaly.NewScorer(anomaly.DefaultConfig()))
}

func seedHistory(t *testing.T, store *mockStorage, n int, amount float64, ref time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.SaveTransaction(context.Background(), model.Transaction{
			Date:        ref.Add(-time.Duration(i+1) * 24 * time.Hour),
			Description: "seed",
			Category:    "Travel",
			Type:        model.TypeExpense,
			Amount:      amount + float64(i%3)*50,
		})
		require.NoError(t, err)
	}
}

func TestEvaluateSkipsWithInsufficientHistory(t *testing.T) {
	store := newMockStorage()
	e := newTestEngine(store)
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

	// Nine prior samples: below the floor, the scorer must not run.
	seedHistory(t, store, 9, 500, now)

	assessment, err := e.EvaluateTransaction(context.Background(), model.Transaction{
		ID:       "tx-big",
		Date:     now,
		Category: "Travel",
		Type:     model.TypeExpense,
		Amount:   1000000,
	})
	require.NoError(t, err)
	assert.Nil(t, assessment)
	assert.Empty(t, store.riskEvents)
}

func TestEvaluateDetectsSpikeAndPersists(t *testing.T) {
	store := newMockStorage()
	e := newTestEngine(store)
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

	seedHistory(t, store, 20, 500, now)

	assessment, err := e.EvaluateTransaction(context.Background(), model.Transaction{
		ID:       "tx-big",
		Date:     now,
		Category: "Travel",
		Type:     model.TypeExpense,
		Amount:   100000,
	})
	require.NoError(t, err)
	require.NotNil(t, assessment)
	assert.Contains(t, assessment.Reasons, model.ReasonAmountSpikeCategory)
	assert.Equal(t, []string{"tx-big"}, store.riskEvents)
}

func TestEvaluateExcludesCurrentFromHistory(t *testing.T) {
	store := newMockStorage()
	e := newTestEngine(store)
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

	seedHistory(t, store, 10, 500, now)
	current := model.Transaction{
		Date:        now,
		Description: "already stored",
		Category:    "Travel",
		Type:        model.TypeExpense,
		Amount:      500,
	}
	id, err := store.SaveTransaction(context.Background(), current)
	require.NoError(t, err)
	current.ID = id

	// With the stored copy excluded there are exactly 10 priors and no
	// duplicate of itself to trip the near-duplicate rule.
	assessment, err := e.EvaluateTransaction(context.Background(), current)
	require.NoError(t, err)
	assert.Nil(t, assessment)
}

func TestScoreCandidateReportsInsufficientHistory(t *testing.T) {
	store := newMockStorage()
	e := newTestEngine(store)
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

	seedHistory(t, store, 9, 500, now)

	_, err := e.ScoreCandidate(context.Background(), model.Transaction{
		Date:     now,
		Category: "Travel",
		Type:     model.TypeExpense,
		Amount:   100000,
	})
	require.ErrorIs(t, err, common.ErrInsufficientHistory)
}

func TestScoreCandidateDoesNotPersist(t *testing.T) {
	store := newMockStorage()
	e := newTestEngine(store)
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

	seedHistory(t, store, 20, 500, now)

	assessment, err := e.ScoreCandidate(context.Background(), model.Transaction{
		Date:     now,
		Category: "Travel",
		Type:     model.TypeExpense,
		Amount:   100000,
	})
	require.NoError(t, err)
	require.NotNil(t, assessment)
	assert.Contains(t, assessment.Reasons, model.ReasonAmountSpikeCategory)
	assert.Empty(t, store.riskEvents)
}

func TestRecordTransactionClassifiesWhenUncategorized(t *testing.T) {
	store := newMockStorage()
	e := newTestEngine(store)
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

	tx, assessment, err := e.RecordTransaction(context.Background(), model.Transaction{
		Date:        now,
		Description: "swiggy dinner order",
		Type:        model.TypeExpense,
		Amount:      450,
	})
	require.NoError(t, err)
	assert.Equal(t, "Food & Drinks", tx.Category)
	assert.NotEmpty(t, tx.ID)
	// Not enough history for scoring yet.
	assert.Nil(t, assessment)
}

func TestLearnFeedbackPersistsAdmittedKeywords(t *testing.T) {
	store := newMockStorage()
	e := newTestEngine(store)

	admitted, err := e.LearnFeedback(context.Background(), "xyzcorp", "Travel")
	require.NoError(t, err)
	require.Contains(t, admitted, "xyzcorp")
	assert.Contains(t, store.learned["Travel"], "xyzcorp")
}

func TestRestoreLexicon(t *testing.T) {
	store := newMockStorage()
	store.learned["Travel"] = []string{"xyzcorp"}

	e := newTestEngine(store)
	require.NoError(t, e.RestoreLexicon(context.Background()))

	result := e.Classify("xyzcorp")
	assert.Equal(t, "Travel", result.Category)
}
