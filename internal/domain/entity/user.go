// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account holder. Every ledger row is owned by exactly one user.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FirstName    string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User.
func NewUser(username, email, firstName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Profile holds presentation data attached one-to-one to a User.
type Profile struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ProfilePic string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewProfile creates an empty profile for the given user.
func NewProfile(userID uuid.UUID) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
