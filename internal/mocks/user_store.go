// Package mocks provides hand-rolled test doubles for the store and auth
// interfaces. Each mock exposes function fields to override behavior and a
// small in-memory default implementation.
package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/fvidalmarques/userhub-api/internal/domain"
	"github.com/fvidalmarques/userhub-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	ListFn       func(ctx context.Context, limit, offset int) ([]*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	DeleteFn     func(ctx context.Context, id int64) error

	// Data for the default in-memory implementation, keyed by ID.
	Users  map[int64]*domain.User
	nextID int64
}

// Ensure MockUserStore implements store.UserStore.
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

// Seed inserts a user directly, bypassing uniqueness checks, and returns it.
func (m *MockUserStore) Seed(name, email, hashedPassword string) *domain.User {
	user := &domain.User{
		ID:             m.nextID,
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	m.Users[user.ID] = user
	m.nextID++
	return user
}

// WithTx implements the UserStore interface. The mock has no transactions,
// so it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	m.nextID++

	stored := *user
	m.Users[user.ID] = &stored
	return nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	for _, user := range m.Users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// List implements the UserStore interface. Like the real store, results are
// ordered by ID.
func (m *MockUserStore) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}

	ids := make([]int64, 0, len(m.Users))
	for id := range m.Users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]*domain.User, 0, limit)
	for i := offset; i < len(ids) && len(users) < limit; i++ {
		copied := *m.Users[ids[i]]
		users = append(users, &copied)
	}
	return users, nil
}

// Update implements the UserStore interface.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	if _, ok := m.Users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	for _, existing := range m.Users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return store.ErrEmailExists
		}
	}

	user.UpdatedAt = time.Now().UTC()
	stored := *user
	m.Users[user.ID] = &stored
	return nil
}

// Delete implements the UserStore interface.
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, ok := m.Users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.Users, id)
	return nil
}
