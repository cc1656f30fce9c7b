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
)

// UpdateEntryInput represents the input for an entry update. Nil fields keep
// their value. Replace marks a full update, for which Amount is required.
type UpdateEntryInput struct {
	UserID        uuid.UUID
	EntryID       uuid.UUID
	Replace       bool
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool
	Description   *string
	Date          *string
}

// UpdateEntryOutput represents the output of an entry update.
type UpdateEntryOutput struct {
	Entry *entity.LedgerEntryWithCategory
}

// UpdateEntryUseCase changes one of the caller's entries.
type UpdateEntryUseCase struct {
	ledgerRepo   adapter.LedgerRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewUpdateEntryUseCase creates a new UpdateEntryUseCase instance.
func NewUpdateEntryUseCase(
	ledgerRepo adapter.LedgerRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *UpdateEntryUseCase {
	return &UpdateEntryUseCase{
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the update. Ownership never changes.
func (uc *UpdateEntryUseCase) Execute(ctx context.Context, input UpdateEntryInput) (*UpdateEntryOutput, error) {
	if input.Replace && input.Amount == nil {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeMissingEntryFields,
			"amount is required",
			domainerror.ErrInvalidAmount,
		)
	}

	current, err := uc.ledgerRepo.FindByID(ctx, input.UserID, input.EntryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrEntryNotFound) {
			return nil, notFound(uc.ledgerRepo.Kind(), err)
		}
		return nil, fmt.Errorf("failed to find %s: %w", uc.ledgerRepo.Kind(), err)
	}
	e, category := current.Entry, current.Category

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		e.Amount = *input.Amount
	}

	if input.Date != nil {
		occurredAt, err := parseOccurredAt(*input.Date, uc.clock)
		if err != nil {
			return nil, err
		}
		e.OccurredAt = occurredAt
	}

	if input.Description != nil {
		e.Description = strings.TrimSpace(*input.Description)
	}

	switch {
	case input.CategoryID != nil:
		if category, err = resolveCategory(ctx, uc.categoryRepo, input.UserID, *input.CategoryID); err != nil {
			return nil, err
		}
		e.CategoryID = input.CategoryID
	case input.ClearCategory:
		e.CategoryID = nil
		category = nil
	}

	e.UpdatedAt = time.Now().UTC()

	if err := uc.ledgerRepo.Update(ctx, e); err != nil {
		if errors.Is(err, domainerror.ErrEntryNotFound) {
			return nil, notFound(uc.ledgerRepo.Kind(), err)
		}
		return nil, fmt.Errorf("failed to update %s: %w", e.Kind, err)
	}

	return &UpdateEntryOutput{
		Entry: &entity.LedgerEntryWithCategory{Entry: e, Category: category},
	}, nil
}
