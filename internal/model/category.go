package model

import "strings"

// TransactionType indicates whether a transaction is income or expense.
type TransactionType string

const (
	// TypeIncome represents money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money going out.
	TypeExpense TransactionType = "expense"
)

// DefaultCategory is the fallback category for blank or unclassifiable input.
const DefaultCategory = "General"

// Categories is the fixed set of spending categories, in declaration order.
// Hard-rule matching and fuzzy scoring both iterate this slice, so the
// order is part of the classification contract and must stay stable.
var Categories = []string{
	"General",
	"Groceries",
	"Food & Drinks",
	"Furniture",
	"Rent",
	"Water",
	"Gifts",
	"Medical",
	"Maintenance",
	"Travel",
	"Movies",
	"Electricity",
	"Donation",
}

// IsValidCategory reports whether name is one of the known categories.
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// NormalizeCategory trims a raw category value and falls back to the
// default category when the result is blank.
func NormalizeCategory(raw string) string {
	c := strings.TrimSpace(raw)
	if c == "" {
		return DefaultCategory
	}
	return c
}

// NormalizeType coerces a raw type string to a known TransactionType,
// defaulting to expense.
func NormalizeType(raw string) TransactionType {
	if TransactionType(strings.ToLower(strings.TrimSpace(raw))) == TypeIncome {
		return TypeIncome
	}
	return TypeExpense
}
