package service

import (
	"time"

	"github.com/fvidalmarques/userhub-api/internal/domain"
)

// UserResponse is the public projection of a user record. It is built fresh
// on every read and never carries the password hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthenticatedSession pairs a user projection with the bearer token issued
// at login. It is transient and never persisted.
type AuthenticatedSession struct {
	User  UserResponse
	Token string
}

// NewUserResponse projects a persisted user record to its public-facing
// representation, stripping the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
