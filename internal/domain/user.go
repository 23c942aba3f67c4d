package domain

import (
	"errors"
	"strings"
	"time"
)

// Validation limits for user fields. The same rules are enforced at the API
// boundary by the request validator; these are the domain's last line of
// defense for users constructed programmatically.
const (
	MinNameLength     = 5
	MaxNameLength     = 50
	MinEmailLength    = 5
	MaxEmailLength    = 100
	MinPasswordLength = 8
	MaxPasswordLength = 100
)

// Common validation errors
var (
	ErrNameTooShort     = errors.New("name must be at least 5 characters long")
	ErrNameTooLong      = errors.New("name must be at most 50 characters long")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrEmailTooLong     = errors.New("email must be at most 100 characters long")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 100 characters long")
	ErrEmptyPassword    = errors.New("password cannot be empty")
)

// User represents a registered account holder.
// The ID and both timestamps are assigned by the store; callers must treat
// them as read-only after creation.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, held only between request decode and hashing
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with the given name, email and plaintext password.
// The store assigns the ID and timestamps on insert.
// Returns an error if validation fails.
//
// NOTE: the caller is responsible for hashing the password before the user
// is persisted.
func NewUser(name, email, password string) (*User, error) {
	user := &User{
		Name:     name,
		Email:    email,
		Password: password, // Must be hashed before storage
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if len(u.Name) < MinNameLength {
		return ErrNameTooShort
	}
	if len(u.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if len(u.Email) < MinEmailLength || !validEmailShape(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		// A plaintext password is present, so validate its length.
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailShape performs a minimal structural check: a single local part,
// an @, and a domain containing an interior dot. Full RFC validation is the
// request validator's job at the API boundary.
func validEmailShape(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
