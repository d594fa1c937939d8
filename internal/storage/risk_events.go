package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledgersense/ledgersense/internal/model"
)

// RiskEvent is a persisted anomaly assessment for one transaction.
type RiskEvent struct {
	CreatedAt     time.Time
	TransactionID string
	Severity      model.Severity
	Status        string
	Reasons       []model.ReasonCode
	ID            int64
	Score         int
}

// SaveRiskEvent persists an anomaly assessment as an open risk event.
func (s *SQLiteStorage) SaveRiskEvent(ctx context.Context, transactionID string, assessment *model.RiskAssessment) (int64, error) {
	if assessment == nil {
		return 0, fmt.Errorf("assessment must not be nil")
	}

	reasons := make([]string, len(assessment.Reasons))
	for i, r := range assessment.Reasons {
		reasons[i] = string(r)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO risk_events (transaction_id, score, severity, reasons, status)
		VALUES (?, ?, ?, ?, 'open')`,
		transactionID, assessment.Score, string(assessment.Severity), strings.Join(reasons, ","))
	if err != nil {
		return 0, fmt.Errorf("failed to save risk event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read risk event id: %w", err)
	}
	return id, nil
}

// ListRiskEvents returns risk events, most recent first.
func (s *SQLiteStorage) ListRiskEvents(ctx context.Context, limit int) ([]RiskEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, score, severity, reasons, status, created_at
		FROM risk_events
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk events: %w", err)
	}
	defer rows.Close()

	var events []RiskEvent
	for rows.Next() {
		var ev RiskEvent
		var severity, reasons string
		if err := rows.Scan(&ev.ID, &ev.TransactionID, &ev.Score, &severity, &reasons, &ev.Status, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan risk event: %w", err)
		}
		ev.Severity = model.Severity(severity)
		for _, r := range strings.Split(reasons, ",") {
			if r != "" {
				ev.Reasons = append(ev.Reasons, model.ReasonCode(r))
			}
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating risk events: %w", err)
	}
	return events, nil
}
