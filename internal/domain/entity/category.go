// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryKind tells whether a category labels incomes or expenses.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// IsValid reports whether k is a known kind.
func (k CategoryKind) IsValid() bool {
	return k == CategoryKindIncome || k == CategoryKindExpense
}

// Category is a user-defined label for ledger entries.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Kind      CategoryKind
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewCategory creates a new Category owned by userID.
func NewCategory(userID uuid.UUID, name string, kind CategoryKind) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
