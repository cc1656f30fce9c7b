package entry

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CreateEntryInput represents the input for entry creation.
type CreateEntryInput struct {
	UserID      uuid.UUID
	Amount      *decimal.Decimal
	CategoryID  *uuid.UUID
	Description string
	Date        string
}

// CreateEntryOutput represents the output of entry creation.
type CreateEntryOutput struct {
	Entry *entity.LedgerEntryWithCategory
}

// CreateEntryUseCase records a new expense or income.
type CreateEntryUseCase struct {
	ledgerRepo   adapter.LedgerRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewCreateEntryUseCase creates a new CreateEntryUseCase instance.
func NewCreateEntryUseCase(
	ledgerRepo adapter.LedgerRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the entry creation. The owner is always input.UserID.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
	if input.Amount == nil {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeMissingEntryFields,
			"amount is required",
			domainerror.ErrInvalidAmount,
		)
	}
	if err := validateAmount(*input.Amount); err != nil {
		return nil, err
	}

	occurredAt, err := parseOccurredAt(input.Date, uc.clock)
	if err != nil {
		return nil, err
	}

	var category *entity.Category
	if input.CategoryID != nil {
		if category, err = resolveCategory(ctx, uc.categoryRepo, input.UserID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	e := entity.NewLedgerEntry(
		uc.ledgerRepo.Kind(),
		input.UserID,
		*input.Amount,
		input.CategoryID,
		strings.TrimSpace(input.Description),
		occurredAt,
	)

	if err := uc.ledgerRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", e.Kind, err)
	}

	return &CreateEntryOutput{
		Entry: &entity.LedgerEntryWithCategory{Entry: e, Category: category},
	}, nil
}
