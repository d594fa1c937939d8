package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ledgersense/ledgersense/internal/common"
	"github.com/ledgersense/ledgersense/internal/model"
)

// SaveTransaction inserts a transaction. An empty ID gets the content
// hash as its identifier. Duplicate hashes are rejected with
// common.ErrDuplicateEntry so imports can skip already-seen rows.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, tx model.Transaction) (string, error) {
	if tx.Date.IsZero() {
		return "", fmt.Errorf("transaction date must be set")
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidAmount, tx.Amount)
	}

	hash := tx.GenerateHash()
	id := tx.ID
	if id == "" {
		id = hash
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, hash, date, description, category, type, currency, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, hash, tx.Date.UTC(), tx.Description,
		model.NormalizeCategory(tx.Category), string(tx.Type), tx.Currency, tx.Amount)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%w: transaction %s", common.ErrDuplicateEntry, id)
		}
		return "", fmt.Errorf("failed to save transaction: %w", err)
	}
	return id, nil
}

// GetRecentTransactions returns up to limit transactions ordered most
// recent first. This is the history window feed for the statistics
// builder.
func (s *SQLiteStorage) GetRecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, category, type, currency, amount
		FROM transactions
		ORDER BY date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var typ string
		var currency sql.NullString
		var date time.Time
		if err := rows.Scan(&tx.ID, &date, &tx.Description, &tx.Category, &typ, &currency, &tx.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Date = date
		tx.Type = model.NormalizeType(typ)
		tx.Currency = currency.String
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("loaded history window", "count", len(transactions), "limit", limit)
	return transactions, nil
}

// GetTransaction returns one transaction by ID.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	var tx model.Transaction
	var typ string
	var currency sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, description, category, type, currency, amount
		FROM transactions WHERE id = ?`, id).
		Scan(&tx.ID, &tx.Date, &tx.Description, &tx.Category, &typ, &currency, &tx.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	tx.Type = model.NormalizeType(typ)
	tx.Currency = currency.String
	return &tx, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
