package entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetEntryInput represents the input for reading one entry.
type GetEntryInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

// GetEntryOutput represents the output of reading one entry.
type GetEntryOutput struct {
	Entry *entity.LedgerEntryWithCategory
}

// GetEntryUseCase reads one of the caller's entries.
type GetEntryUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewGetEntryUseCase creates a new GetEntryUseCase instance.
func NewGetEntryUseCase(ledgerRepo adapter.LedgerRepository) *GetEntryUseCase {
	return &GetEntryUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute reads the entry. Foreign and missing ids are indistinguishable.
func (uc *GetEntryUseCase) Execute(ctx context.Context, input GetEntryInput) (*GetEntryOutput, error) {
	e, err := uc.ledgerRepo.FindByID(ctx, input.UserID, input.EntryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrEntryNotFound) {
			return nil, notFound(uc.ledgerRepo.Kind(), err)
		}
		return nil, fmt.Errorf("failed to find %s: %w", uc.ledgerRepo.Kind(), err)
	}

	return &GetEntryOutput{
		Entry: e,
	}, nil
}
