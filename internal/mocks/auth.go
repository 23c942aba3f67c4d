package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/fvidalmarques/userhub-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	// Token is returned by GenerateToken when GenerateTokenFn is unset.
	Token string
	// Err is returned by GenerateToken when GenerateTokenFn is unset.
	Err error

	GenerateTokenFn func(ctx context.Context, userID int64, email, role string) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// LastClaims records the arguments of the most recent GenerateToken call.
	LastClaims *auth.Claims
}

// Ensure MockJWTService implements auth.JWTService.
var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the JWTService interface.
func (m *MockJWTService) GenerateToken(
	ctx context.Context,
	userID int64,
	email, role string,
) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, email, role)
	}

	m.LastClaims = &auth.Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return m.Token, m.Err
}

// ValidateToken implements the JWTService interface.
func (m *MockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}

	if tokenString != m.Token || m.Token == "" {
		return nil, auth.ErrInvalidToken
	}
	if m.LastClaims == nil {
		return nil, auth.ErrInvalidToken
	}
	return m.LastClaims, nil
}

// MockPasswordHasher implements auth.PasswordHasher for testing without
// paying bcrypt's cost. Hashing prefixes the password; comparison checks
// the prefix.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// ShouldFailCompare forces Compare to fail regardless of input.
	ShouldFailCompare bool
}

// Ensure MockPasswordHasher implements auth.PasswordHasher.
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

const mockHashPrefix = "hashed:"

// Hash implements the PasswordHasher interface.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return mockHashPrefix + password, nil
}

// Compare implements the PasswordHasher interface.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldFailCompare || hashedPassword != mockHashPrefix+password {
		return errors.New("password mismatch")
	}
	return nil
}

// HashedPassword returns the mock hash for a plaintext password, for seeding
// stores in tests.
func HashedPassword(password string) string {
	return mockHashPrefix + password
}
