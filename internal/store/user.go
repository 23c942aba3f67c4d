package store

import (
	"context"
	"database/sql"

	"github.com/fvidalmarques/userhub-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store and fills in the store-assigned
	// ID and timestamps on the given user.
	// The user's HashedPassword must already be set by the caller.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns up to limit users after skipping offset records,
	// ordered by ID so that a fixed snapshot pages stably.
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// Update persists the complete user record, including HashedPassword,
	// and refreshes the updated_at timestamp.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service via RunInTransaction).
	WithTx(tx *sql.Tx) UserStore
}
