package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UserRepository defines the interface for user and profile persistence.
type UserRepository interface {
	// CreateWithProfile stores the user and its profile atomically.
	CreateWithProfile(ctx context.Context, user *entity.User, profile *entity.Profile) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// ExistsByUsername checks if the username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if the email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindProfile retrieves the profile of a user.
	FindProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// UpdateProfile persists profile changes.
	UpdateProfile(ctx context.Context, profile *entity.Profile) error

	// Delete removes the user together with every row it owns.
	Delete(ctx context.Context, id uuid.UUID) error
}
