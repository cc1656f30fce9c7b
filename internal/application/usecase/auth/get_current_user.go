package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetCurrentUserInput represents the input for reading the caller's account.
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// GetCurrentUserOutput holds the account and its profile.
type GetCurrentUserOutput struct {
	User    *entity.User
	Profile *entity.Profile
}

// GetCurrentUserUseCase loads the authenticated user.
type GetCurrentUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetCurrentUserUseCase creates a new GetCurrentUserUseCase instance.
func NewGetCurrentUserUseCase(userRepo adapter.UserRepository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo: userRepo,
	}
}

// Execute returns the user and its profile.
func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, input GetCurrentUserInput) (*GetCurrentUserOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	profile, err := loadProfile(ctx, uc.userRepo, user.ID)
	if err != nil {
		return nil, err
	}

	return &GetCurrentUserOutput{
		User:    user,
		Profile: profile,
	}, nil
}

// loadProfile returns the user's profile, falling back to an empty one for
// accounts that predate profiles.
func loadProfile(ctx context.Context, repo adapter.UserRepository, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := repo.FindProfile(ctx, userID)
	if errors.Is(err, domainerror.ErrProfileNotFound) {
		return entity.NewProfile(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}
