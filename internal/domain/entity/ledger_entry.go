// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel is reported for entries without a live category.
const UncategorizedLabel = "No Category"

// EntryKind distinguishes the two ledger collections.
type EntryKind string

const (
	EntryKindExpense EntryKind = "expense"
	EntryKindIncome  EntryKind = "income"
)

// IsValid reports whether k is a known kind.
func (k EntryKind) IsValid() bool {
	return k == EntryKindExpense || k == EntryKindIncome
}

// LedgerEntry is a single expense or income. Both kinds share the same shape.
type LedgerEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Kind        EntryKind
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLedgerEntry creates a new entry of the given kind.
func NewLedgerEntry(kind EntryKind, userID uuid.UUID, amount decimal.Decimal, categoryID *uuid.UUID, description string, occurredAt time.Time) *LedgerEntry {
	now := time.Now().UTC()
	return &LedgerEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		Amount:      amount,
		CategoryID:  categoryID,
		Description: description,
		OccurredAt:  occurredAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// LedgerEntryWithCategory pairs an entry with its resolved category, if any.
type LedgerEntryWithCategory struct {
	Entry    *LedgerEntry
	Category *Category
}

// CategoryName returns the category label, or UncategorizedLabel when the
// reference is empty or no longer resolves.
func (e *LedgerEntryWithCategory) CategoryName() string {
	if e.Category == nil {
		return UncategorizedLabel
	}
	return e.Category.Name
}
