// Package model defines the domain types shared across the engine.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single financial transaction from any source.
// Instances are owned by the caller; the engine treats them as read-only.
type Transaction struct {
	Date        time.Time
	ID          string
	Description string // Raw free-text description
	Category    string // Normalized, non-blank; defaults to "General"
	Currency    string // ISO 4217 code; empty means home currency
	Type        TransactionType
	Amount      float64
}

// GenerateHash creates a stable hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format(time.RFC3339),
		t.Amount,
		t.Description,
		t.Type)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
