package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const maxProfilePicLength = 500

// UpdateProfileInput represents the input for a profile update.
// A nil ProfilePic leaves the picture unchanged; an empty one clears it.
type UpdateProfileInput struct {
	UserID     uuid.UUID
	ProfilePic *string
}

// UpdateProfileOutput holds the updated account view.
type UpdateProfileOutput struct {
	User    *entity.User
	Profile *entity.Profile
}

// UpdateProfileUseCase changes the caller's profile.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute applies the update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
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

	if input.ProfilePic != nil {
		pic := strings.TrimSpace(*input.ProfilePic)
		if pic != "" && !isValidPictureURL(pic) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidProfilePic,
				"profile_pic must be an absolute http(s) URL of at most 500 characters",
				domainerror.ErrInvalidProfilePic,
			)
		}
		profile.ProfilePic = pic
		profile.UpdatedAt = time.Now().UTC()

		if err := uc.userRepo.UpdateProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return &UpdateProfileOutput{
		User:    user,
		Profile: profile,
	}, nil
}

func isValidPictureURL(raw string) bool {
	if len(raw) > maxProfilePicLength {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
