// Package postgres implements the store interfaces against PostgreSQL
// using the pgx driver through database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fvidalmarques/userhub-api/internal/domain"
	"github.com/fvidalmarques/userhub-api/internal/store"
)

// UserStore implements store.UserStore backed by PostgreSQL.
type UserStore struct {
	db store.DBTX
}

// NewUserStore creates a PostgreSQL implementation of store.UserStore.
// It accepts a database connection that is initialized and managed by the
// caller.
func NewUserStore(db store.DBTX) *UserStore {
	return &UserStore{db: db}
}

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// WithTx returns a UserStore bound to the given transaction.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx}
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	const query = `
		INSERT INTO users (name, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query, user.Name, user.Email, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return MapUniqueViolation(err, store.ErrEmailExists)
	}

	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
		SELECT id, name, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
		SELECT id, name, email, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// List implements store.UserStore.List. Ordering by id keeps pages of a
// fixed snapshot disjoint and stable.
func (s *UserStore) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	const query = `
		SELECT id, name, email, hashed_password, created_at, updated_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0, limit)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return users, nil
}

// Update implements store.UserStore.Update. The caller provides the complete
// user record; updated_at is refreshed in the same statement.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	const query = `
		UPDATE users
		SET name = $1, email = $2, hashed_password = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`

	err := s.db.QueryRowContext(ctx, query, user.Name, user.Email, user.HashedPassword, user.ID).
		Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrUserNotFound
		}
		return MapUniqueViolation(err, store.ErrEmailExists)
	}

	return nil
}

// Delete implements store.UserStore.Delete.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// scanUser scans a single user row, mapping sql.ErrNoRows to
// store.ErrUserNotFound.
func (s *UserStore) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}
	return &u, nil
}
