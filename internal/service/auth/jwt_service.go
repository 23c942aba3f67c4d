package auth

import (
	"context"
	"time"
)

// DefaultRole is the role claim embedded in every issued token. The service
// has no authorization model, so all authenticated users carry the same role.
const DefaultRole = "ADMIN"

// JWTService defines operations for issuing and verifying bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed bearer token carrying the user's
	// identity claims. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID int64, email, role string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the identity claims carried by a bearer token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64 `json:"user_id"`

	// Email is the user's email address at issuance time.
	Email string `json:"email"`

	// Role is the user's fixed role.
	Role string `json:"role"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
