package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// LedgerEntryColumns is the column set shared by the expenses and incomes tables.
// Amounts are stored as integer cents.
type LedgerEntryColumns struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AmountCents int64      `gorm:"not null"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	Description string     `gorm:"type:text"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// ExpenseModel represents the expenses table.
type ExpenseModel struct {
	LedgerEntryColumns
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// IncomeModel represents the incomes table.
type IncomeModel struct {
	LedgerEntryColumns
}

// TableName returns the table name for the IncomeModel.
func (IncomeModel) TableName() string {
	return "incomes"
}

// LedgerTable returns the table backing the given entry kind.
func LedgerTable(kind entity.EntryKind) string {
	if kind == entity.EntryKindIncome {
		return IncomeModel{}.TableName()
	}
	return ExpenseModel{}.TableName()
}

// NewLedgerModel wraps the columns in the typed model of the given kind.
func NewLedgerModel(kind entity.EntryKind, cols LedgerEntryColumns) any {
	if kind == entity.EntryKindIncome {
		return &IncomeModel{LedgerEntryColumns: cols}
	}
	return &ExpenseModel{LedgerEntryColumns: cols}
}

// ToEntity converts stored columns to a domain LedgerEntry of the given kind.
func (c *LedgerEntryColumns) ToEntity(kind entity.EntryKind) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:          c.ID,
		UserID:      c.UserID,
		Kind:        kind,
		Amount:      valueobject.AmountFromCents(c.AmountCents),
		CategoryID:  c.CategoryID,
		Description: c.Description,
		OccurredAt:  c.OccurredAt.UTC(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// LedgerColumnsFromEntity flattens a domain LedgerEntry. The timestamp is
// normalised to UTC so that range comparisons behave the same on every dialect.
func LedgerColumnsFromEntity(e *entity.LedgerEntry) LedgerEntryColumns {
	return LedgerEntryColumns{
		ID:          e.ID,
		UserID:      e.UserID,
		AmountCents: valueobject.CentsFromAmount(e.Amount),
		CategoryID:  e.CategoryID,
		Description: e.Description,
		OccurredAt:  e.OccurredAt.UTC().Truncate(time.Microsecond),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// All returns every model managed by AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&ProfileModel{},
		&RefreshTokenModel{},
		&CategoryModel{},
		&ExpenseModel{},
		&IncomeModel{},
	}
}
