// Package engine orchestrates classification, statistics, and anomaly
// scoring around the storage layer.
package engine

import (
	"context"
	"fmt"

	"github.com/ledgersense/ledgersense/internal/anomaly"
	"github.com/ledgersense/ledgersense/internal/classify"
	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/ledgersense/ledgersense/internal/model"
)

// Storage is the persistence surface the engine needs. The SQLite
// implementation in internal/storage satisfies it.
type Storage interface {
	SaveTransaction(ctx context.Context, tx model.Transaction) (string, error)
	GetRecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error)
	SaveLearnedKeywords(ctx context.Context, category string, keywords []string) error
	GetLearnedKeywords(ctx context.Context) (map[string][]string, error)
	SaveRiskEvent(ctx context.Context, transactionID string, assessment *model.RiskAssessment) (int64, error)
}

// Config holds the engine's orchestration options.
type Config struct {
	// HistoryWindow bounds how many recent transactions feed the
	// statistics builder.
	HistoryWindow int
	// MinHistory is the scoring precondition: with fewer prior samples
	// the scorer is not invoked at all.
	MinHistory int
}

// DefaultConfig returns the default orchestration options.
func DefaultConfig() Config {
	return Config{
		HistoryWindow: 200,
		MinHistory:    10,
	}
}

// Engine wires the classifier and scorer to transaction storage.
type Engine struct {
	store      Storage
	classifier *classify.Classifier
	scorer     *anomaly.Scorer
	cfg        Config
}

// New creates an engine with default orchestration options.
func New(store Storage, classifier *classify.Classifier, scorer *anomaly.Scorer) *Engine {
	return NewWithConfig(store, classifier, scorer, DefaultConfig())
}

// NewWithConfig creates an engine with custom orchestration options.
func NewWithConfig(store Storage, classifier *classify.Classifier, scorer *anomaly.Scorer, cfg Config) *Engine {
	return &Engine{
		store:      store,
		classifier: classifier,
		scorer:     scorer,
		cfg:        cfg,
	}
}

// RestoreLexicon replays persisted learned keywords into the classifier.
// Call once at startup before serving classifications.
func (e *Engine) RestoreLexicon(ctx context.Context) error {
	learned, err := e.store.GetLearnedKeywords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load learned keywords: %w", err)
	}
	for category, keywords := range learned {
		if err := e.classifier.AddKeywords(category, keywords); err != nil {
			return fmt.Errorf("failed to restore keywords for %s: %w", category, err)
		}
	}
	if len(learned) > 0 {
		common.LogDebug("restored learned lexicon", common.Fields{"categories": len(learned)})
	}
	return nil
}

// Classify maps a description to a category without touching storage.
func (e *Engine) Classify(description string) model.ClassificationResult {
	return e.classifier.Classify(description)
}

// CategoryKeywords returns the current lexicon for a category, seed and
// learned keywords together, sorted.
func (e *Engine) CategoryKeywords(category string) []string {
	return e.classifier.Keywords(category)
}

// LearnFeedback teaches the classifier a corrected category and persists
// whatever keywords were admitted. All feedback is routed through this
// single method, so lexicon writes are serialized by the classifier's
// write lock.
func (e *Engine) LearnFeedback(ctx context.Context, description, category string) ([]string, error) {
	admitted, err := e.classifier.Learn(description, category)
	if err != nil {
		return nil, err
	}
	if len(admitted) == 0 {
		return nil, nil
	}
	if err := e.store.SaveLearnedKeywords(ctx, category, admitted); err != nil {
		return admitted, fmt.Errorf("keywords learned but not persisted: %w", err)
	}
	return admitted, nil
}

// EvaluateTransaction builds fresh baselines from the recent history
// window and scores the given transaction against them. It returns nil
// (and no error) when history is too small for stable baselines or when
// nothing unusual fired. A non-nil assessment is persisted as a risk
// event when the transaction has an ID.
func (e *Engine) EvaluateTransaction(ctx context.Context, current model.Transaction) (*model.RiskAssessment, error) {
	history, err := e.store.GetRecentTransactions(ctx, e.cfg.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// Strictly earlier samples only: the current transaction may already
	// be stored, and it must not feed its own baseline comparison windows.
	history = excludeTransaction(history, current.ID)

	if len(history) < e.cfg.MinHistory {
		common.LogDebug("skipping anomaly scoring, insufficient history",
			common.Fields{"have": len(history), "need": e.cfg.MinHistory})
		return nil, nil
	}

	profile := anomaly.BuildProfile(history)
	assessment := e.scorer.Score(current, current.Currency, history, profile)
	if assessment == nil {
		return nil, nil
	}

	if current.ID != "" {
		if _, err := e.store.SaveRiskEvent(ctx, current.ID, assessment); err != nil {
			return assessment, fmt.Errorf("assessment computed but not persisted: %w", err)
		}
	}

	common.LogInfo("anomaly detected", common.Fields{
		"transaction": current.ID,
		"score":       assessment.Score,
		"severity":    assessment.Severity,
		"reasons":     assessment.Reasons,
	})
	return assessment, nil
}

// ScoreCandidate evaluates a hypothetical transaction without persisting
// anything. Unlike EvaluateTransaction, which skips silently inside the
// recording flow, an explicit query reports a too-small history window
// as common.ErrInsufficientHistory so callers can tell it apart from
// "nothing unusual".
func (e *Engine) ScoreCandidate(ctx context.Context, current model.Transaction) (*model.RiskAssessment, error) {
	history, err := e.store.GetRecentTransactions(ctx, e.cfg.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	history = excludeTransaction(history, current.ID)

	if len(history) < e.cfg.MinHistory {
		return nil, fmt.Errorf("%w: have %d, need %d",
			common.ErrInsufficientHistory, len(history), e.cfg.MinHistory)
	}

	profile := anomaly.BuildProfile(history)
	return e.scorer.Score(current, current.Currency, history, profile), nil
}

// RecordTransaction classifies the description when no category is set,
// saves the transaction, and evaluates it for anomalies.
func (e *Engine) RecordTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, *model.RiskAssessment, error) {
	if tx.Category == "" {
		result := e.classifier.Classify(tx.Description)
		tx.Category = result.Category
	}

	id, err := e.store.SaveTransaction(ctx, tx)
	if err != nil {
		return tx, nil, err
	}
	tx.ID = id

	assessment, err := e.EvaluateTransaction(ctx, tx)
	if err != nil {
		return tx, nil, err
	}
	return tx, assessment, nil
}

// BuildProfile exposes the statistics builder over the stored history
// window, for callers that want the baselines without scoring.
func (e *Engine) BuildProfile(ctx context.Context) (*model.AnalyticsProfile, error) {
	history, err := e.store.GetRecentTransactions(ctx, e.cfg.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return anomaly.BuildProfile(history), nil
}

func excludeTransaction(history []model.Transaction, id string) []model.Transaction {
	if id == "" {
		return history
	}
	out := history[:0]
	for _, h := range history {
		if h.ID != id {
			out = append(out, h)
		}
	}
	return out
}
