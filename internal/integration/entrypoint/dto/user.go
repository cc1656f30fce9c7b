package dto

import (
	"time"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UpdateProfileRequest represents the request body for profile updates.
type UpdateProfileRequest struct {
	ProfilePic *string `json:"profile_pic"`
}

// DeleteAccountRequest represents the request body for account deletion.
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// ProfileResponse represents the profile attached to a user.
type ProfileResponse struct {
	ID         string `json:"id"`
	ProfilePic string `json:"profile_pic"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	FirstName string           `json:"first_name"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToUserResponse converts a domain User and its optional Profile to a UserResponse DTO.
func ToUserResponse(user *entity.User, profile *entity.Profile) UserResponse {
	resp := UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		CreatedAt: user.CreatedAt,
	}
	if profile != nil {
		resp.Profile = &ProfileResponse{
			ID:         profile.ID.String(),
			ProfilePic: profile.ProfilePic,
		}
	}
	return resp
}
