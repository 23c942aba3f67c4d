package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fvidalmarques/userhub-api/internal/domain"
	"github.com/fvidalmarques/userhub-api/internal/service/auth"
	"github.com/fvidalmarques/userhub-api/internal/store"
)

// RegisterInput carries the fields required to register a new user.
// The Password is plaintext and is hashed before anything is persisted.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateUserInput carries the full replacement state for a user.
// All three fields are required.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// PatchUserInput carries a partial update. Nil fields are left untouched;
// at least one field must be set.
type PatchUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// IsEmpty reports whether no field is set.
func (p PatchUserInput) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}

// UserService orchestrates registration, authentication and user CRUD.
// It owns the business rules: email uniqueness, credential verification,
// token issuance and partial-update semantics.
type UserService interface {
	// Register creates a new account. Returns store.ErrEmailExists when the
	// email is already taken. No token is issued at registration.
	Register(ctx context.Context, input RegisterInput) (*UserResponse, error)

	// Login verifies credentials and issues a bearer token.
	// Returns store.ErrUserNotFound for an unknown email and
	// ErrInvalidCredentials for a wrong password; the two are distinguishable.
	Login(ctx context.Context, input LoginInput) (*AuthenticatedSession, error)

	// GetUser returns the public projection of the user with the given ID.
	// Returns store.ErrUserNotFound if no such user exists.
	GetUser(ctx context.Context, id int64) (*UserResponse, error)

	// ListUsers returns up to limit projections after skipping offset
	// records. The handler guarantees limit > 0 and offset >= 0.
	ListUsers(ctx context.Context, limit, offset int) ([]UserResponse, error)

	// UpdateUser replaces name, email and password of an existing user.
	// Returns store.ErrUserNotFound if the id is absent and
	// store.ErrEmailExists if the email belongs to a different user.
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*UserResponse, error)

	// PatchUser applies only the supplied fields to an existing user.
	// Same error contract as UpdateUser; a patch with no fields fails with
	// ErrNoFieldsToUpdate.
	PatchUser(ctx context.Context, id int64, input PatchUserInput) (*UserResponse, error)

	// DeleteUser removes the user with the given ID.
	// Returns store.ErrUserNotFound if no such user exists.
	DeleteUser(ctx context.Context, id int64) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	jwtService auth.JWTService
	db         *sql.DB
	logger     *slog.Logger
	runTx      func(ctx context.Context, db *sql.DB, fn store.TxFn) error // Injectable for testing
}

// Ensure UserServiceImpl implements UserService.
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a UserService with explicitly injected
// dependencies; there are no ambient singletons.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		jwtService: jwtService,
		db:         db,
		logger:     logger.With("component", "user_service"),
		runTx:      store.RunInTransaction,
	}
}

// Register creates a new account with a hashed password.
//
// The email pre-check exists for a precise error message; the unique
// constraint in the store remains the authoritative guard, so a concurrent
// registration racing past the check still surfaces as store.ErrEmailExists.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	input RegisterInput,
) (*UserResponse, error) {
	user, err := domain.NewUser(input.Name, input.Email, input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.ensureEmailFree(ctx, s.userStore, input.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register an existing email", "email", input.Email)
			return nil, err
		}
		s.logger.Error("failed to create user", "error", err, "email", input.Email)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)

	resp := NewUserResponse(user)
	return &resp, nil
}

// Login verifies the presented credentials and issues a bearer token.
func (s *UserServiceImpl) Login(
	ctx context.Context,
	input LoginInput,
) (*AuthenticatedSession, error) {
	user, err := s.userStore.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email", "email", input.Email)
			return nil, err
		}
		s.logger.Error("failed to look up user by email", "error", err, "email", input.Email)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, input.Password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Email, auth.DefaultRole)
	if err != nil {
		s.logger.Error("failed to generate token", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &AuthenticatedSession{
		User:  NewUserResponse(user),
		Token: token,
	}, nil
}

// GetUser returns the projection for the given id.
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		s.logger.Error("failed to retrieve user", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	resp := NewUserResponse(user)
	return &resp, nil
}

// ListUsers returns a page of user projections in store order.
func (s *UserServiceImpl) ListUsers(
	ctx context.Context,
	limit, offset int,
) ([]UserResponse, error) {
	users, err := s.userStore.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err, "limit", limit, "offset", offset)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses, nil
}

// UpdateUser replaces all mutable fields of a user. The current state is
// re-read inside the transaction; caller-supplied state is never trusted.
// The raw password is always re-hashed before it reaches the store.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	id int64,
	input UpdateUserInput,
) (*UserResponse, error) {
	var updated *domain.User

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.ensureEmailFree(ctx, txStore, input.Email, id); err != nil {
			return err
		}

		hashed, err := s.hasher.Hash(input.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user.Name = input.Name
		user.Email = input.Email
		user.HashedPassword = hashed
		if err := user.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		s.logUpdateFailure("full update", id, err)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id)

	resp := NewUserResponse(updated)
	return &resp, nil
}

// PatchUser applies only the supplied fields. A supplied password is
// re-hashed like on every other write path.
func (s *UserServiceImpl) PatchUser(
	ctx context.Context,
	id int64,
	input PatchUserInput,
) (*UserResponse, error) {
	if input.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	var updated *domain.User

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Email != nil {
			if err := s.ensureEmailFree(ctx, txStore, *input.Email, id); err != nil {
				return err
			}
			user.Email = *input.Email
		}
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Password != nil {
			hashed, err := s.hasher.Hash(*input.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.HashedPassword = hashed
		}

		if err := user.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		s.logUpdateFailure("partial update", id, err)
		return nil, err
	}

	s.logger.Info("user patched", "user_id", id)

	resp := NewUserResponse(updated)
	return &resp, nil
}

// DeleteUser removes the user with the given ID.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to delete non-existent user", "user_id", id)
			return err
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// ensureEmailFree fails with store.ErrEmailExists when the email is owned by
// a user other than selfID. Pass selfID 0 for registration, where any owner
// is a conflict.
func (s *UserServiceImpl) ensureEmailFree(
	ctx context.Context,
	userStore store.UserStore,
	email string,
	selfID int64,
) error {
	owner, err := userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email ownership: %w", err)
	}

	if owner.ID != selfID {
		return store.ErrEmailExists
	}
	return nil
}

func (s *UserServiceImpl) logUpdateFailure(op string, id int64, err error) {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		s.logger.Debug(op+" of non-existent user", "user_id", id)
	case errors.Is(err, store.ErrEmailExists):
		s.logger.Debug(op+" to an email that is already taken", "user_id", id)
	default:
		s.logger.Error(op+" failed", "error", err, "user_id", id)
	}
}
