package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorClassification(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrEmailExists, ErrDuplicate)

	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("wrapped: %w", ErrUserNotFound)))
	assert.False(t, IsNotFoundError(ErrEmailExists))

	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("wrapped: %w", ErrEmailExists)))
	assert.False(t, IsDuplicateError(ErrUserNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	base := errors.New("connection reset")
	err := NewStoreError("user", "create", "insert failed", base)

	assert.Equal(t, "create operation on user failed: insert failed: connection reset", err.Error())
	assert.ErrorIs(t, err, base)

	var storeErr *StoreError
	assert.ErrorAs(t, fmt.Errorf("outer: %w", err), &storeErr)
	assert.Equal(t, "user", storeErr.Entity)

	noCause := NewStoreError("user", "delete", "nothing to do", nil)
	assert.Equal(t, "delete operation on user failed: nothing to do", noCause.Error())
}
