package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// EntryFilter narrows a ledger listing.
type EntryFilter struct {
	CategoryID *uuid.UUID
	Range      valueobject.DateRange
}

// EntryPagination represents pagination parameters.
type EntryPagination struct {
	Page     int
	PageSize int
}

// EntryPage is one page of a ledger listing.
type EntryPage struct {
	Entries    []*entity.LedgerEntryWithCategory
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// LedgerAggregator computes sums over one ledger collection of a single owner.
type LedgerAggregator interface {
	// Sum returns the exact total of amounts in range; zero for an empty set.
	Sum(ctx context.Context, userID uuid.UUID, r valueobject.DateRange) (decimal.Decimal, error)

	// SumByCategory returns one row per category label, with entries lacking a
	// live category grouped under entity.UncategorizedLabel.
	SumByCategory(ctx context.Context, userID uuid.UUID, r valueobject.DateRange) ([]entity.CategoryTotal, error)
}

// LedgerRepository persists one ledger collection (expenses or incomes).
type LedgerRepository interface {
	LedgerAggregator

	// Kind tells which collection the repository serves.
	Kind() entity.EntryKind

	Create(ctx context.Context, entry *entity.LedgerEntry) error

	// FindByID returns domainerror.ErrEntryNotFound for absent and foreign ids alike.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.LedgerEntryWithCategory, error)

	// FindByFilter lists the owner's entries newest first.
	FindByFilter(ctx context.Context, userID uuid.UUID, filter EntryFilter, pagination EntryPagination) (*EntryPage, error)

	Update(ctx context.Context, entry *entity.LedgerEntry) error

	Delete(ctx context.Context, userID, id uuid.UUID) error
}
