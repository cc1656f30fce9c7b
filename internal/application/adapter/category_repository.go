package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryRepository persists categories. Every method taking a userID only
// sees rows owned by that user.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error

	// FindByID returns domainerror.ErrCategoryNotFound for absent and foreign ids alike.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error)

	// FindByOwner lists the user's categories, optionally restricted to one kind.
	FindByOwner(ctx context.Context, userID uuid.UUID, kind *entity.CategoryKind) ([]*entity.Category, error)

	// ExistsByName checks name uniqueness per owner and kind, ignoring excludeID when set.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, kind entity.CategoryKind, excludeID *uuid.UUID) (bool, error)

	Update(ctx context.Context, category *entity.Category) error

	// Delete detaches the category from the owner's entries, then removes it.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
