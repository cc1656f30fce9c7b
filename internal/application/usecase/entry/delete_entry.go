package entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteEntryInput represents the input for entry deletion.
type DeleteEntryInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

// DeleteEntryUseCase removes one of the caller's entries.
type DeleteEntryUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewDeleteEntryUseCase creates a new DeleteEntryUseCase instance.
func NewDeleteEntryUseCase(ledgerRepo adapter.LedgerRepository) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, input DeleteEntryInput) error {
	if err := uc.ledgerRepo.Delete(ctx, input.UserID, input.EntryID); err != nil {
		if errors.Is(err, domainerror.ErrEntryNotFound) {
			return notFound(uc.ledgerRepo.Kind(), err)
		}
		return fmt.Errorf("failed to delete %s: %w", uc.ledgerRepo.Kind(), err)
	}
	return nil
}
