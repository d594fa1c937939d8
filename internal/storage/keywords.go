package storage

import (
	"context"
	"fmt"

	"github.com/ledgersense/ledgersense/internal/model"
)

// SaveLearnedKeywords records keywords admitted by the feedback API so
// lexicon growth survives restarts. Duplicates are ignored.
func (s *SQLiteStorage) SaveLearnedKeywords(ctx context.Context, category string, keywords []string) error {
	if len(keywords) == 0 {
		return nil
	}
	if !model.IsValidCategory(category) {
		return fmt.Errorf("invalid category %q", category)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, kw := range keywords {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO learned_keywords (category, keyword)
			VALUES (?, ?)`, category, kw); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save keyword %q: %w", kw, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit keywords: %w", err)
	}
	return nil
}

// GetLearnedKeywords returns all persisted keywords grouped by category,
// for replaying into a fresh classifier at startup.
func (s *SQLiteStorage) GetLearnedKeywords(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, keyword FROM learned_keywords ORDER BY category, keyword`)
	if err != nil {
		return nil, fmt.Errorf("failed to query learned keywords: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var category, keyword string
		if err := rows.Scan(&category, &keyword); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		out[category] = append(out[category], keyword)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keywords: %w", err)
	}
	return out, nil
}
