// Package entry contains the expense and income use cases. Both kinds share
// one implementation; the repository passed in decides which ledger is used.
package entry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// PaginationConfig bounds list page sizes.
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewEntryError(
			domainerror.ErrCodeInvalidAmount,
			"amount must not be negative",
			domainerror.ErrInvalidAmount,
		)
	}
	if !valueobject.HasCentPrecision(amount) {
		return domainerror.NewEntryError(
			domainerror.ErrCodeInvalidAmount,
			"amount must have at most 2 decimal places",
			domainerror.ErrInvalidAmount,
		)
	}
	if amount.GreaterThanOrEqual(valueobject.MaxAmount) {
		return domainerror.NewEntryError(
			domainerror.ErrCodeAmountTooLarge,
			"amount must have at most 8 digits before the decimal point",
			domainerror.ErrAmountTooLarge,
		)
	}
	return nil
}

// parseOccurredAt reads an entry date in the viewer's calendar. An empty
// value means now.
func parseOccurredAt(value string, clock adapter.Clock) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return clock.Now(), nil
	}
	t, err := valueobject.ParseTimestamp(value, clock.Location())
	if err != nil {
		return time.Time{}, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidEntryDate,
			"date must be RFC 3339 or YYYY-MM-DD",
			domainerror.ErrInvalidEntryDate,
		)
	}
	return t, nil
}

// resolveCategory checks that the category belongs to the entry owner.
func resolveCategory(ctx context.Context, repo adapter.CategoryRepository, userID, categoryID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeEntryCategoryScope,
				"category not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

func notFound(kind entity.EntryKind, err error) error {
	return domainerror.NewEntryError(
		domainerror.ErrCodeEntryNotFound,
		fmt.Sprintf("%s not found", kind),
		err,
	)
}
