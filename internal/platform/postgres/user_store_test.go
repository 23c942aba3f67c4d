package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fvidalmarques/userhub-api/internal/store"
)

// execOnlyDB implements store.DBTX for exercising statement paths without a
// database. Only ExecContext is scripted; the query methods are unused here.
type execOnlyDB struct {
	result sql.Result
	err    error
}

func (f *execOnlyDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return f.result, f.err
}

func (f *execOnlyDB) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errors.New("not scripted")
}

func (f *execOnlyDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, errors.New("not scripted")
}

func (f *execOnlyDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestDeleteMissingUserReturnsSentinel(t *testing.T) {
	t.Parallel()

	userStore := NewUserStore(&execOnlyDB{result: fakeResult{rows: 0}})

	err := userStore.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteExistingUser(t *testing.T) {
	t.Parallel()

	userStore := NewUserStore(&execOnlyDB{result: fakeResult{rows: 1}})

	assert.NoError(t, userStore.Delete(context.Background(), 1))
}

func TestDeleteExecFailure(t *testing.T) {
	t.Parallel()

	userStore := NewUserStore(&execOnlyDB{err: errors.New("connection reset")})

	err := userStore.Delete(context.Background(), 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrUserNotFound)
}
