package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestLedgerEntryWithCategory_CategoryName(t *testing.T) {
	userID := uuid.New()
	food := NewCategory(userID, "Food", CategoryKindExpense)
	entry := NewLedgerEntry(EntryKindExpense, userID, decimal.NewFromInt(10), &food.ID, "", time.Now())

	tests := []struct {
		name     string
		category *Category
		want     string
	}{
		{"resolved category", food, "Food"},
		{"missing category", nil, UncategorizedLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &LedgerEntryWithCategory{Entry: entry, Category: tt.category}
			if got := e.CategoryName(); got != tt.want {
				t.Errorf("CategoryName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	if !EntryKindExpense.IsValid() || !EntryKindIncome.IsValid() {
		t.Error("known entry kinds should be valid")
	}
	if EntryKind("transfer").IsValid() {
		t.Error("unknown entry kind should be invalid")
	}
	if CategoryKind("").IsValid() {
		t.Error("empty category kind should be invalid")
	}
}

func TestTotals_Balance(t *testing.T) {
	totals := Totals{
		Income:  decimal.RequireFromString("500.00"),
		Expense: decimal.RequireFromString("100.10"),
	}
	if got := totals.Balance(); !got.Equal(decimal.RequireFromString("399.90")) {
		t.Errorf("Balance() = %s, want 399.90", got)
	}
	if got := (Totals{Income: decimal.Zero, Expense: decimal.NewFromInt(3)}).Balance(); !got.Equal(decimal.NewFromInt(-3)) {
		t.Errorf("Balance() = %s, want -3", got)
	}
}
