package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	// Minimum cost keeps the test fast.
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("longpass1")
	require.NoError(t, err)
	assert.NotEqual(t, "longpass1", hash, "hash must be irreversible, not the raw value")

	assert.NoError(t, hasher.Compare(hash, "longpass1"))
	assert.Error(t, hasher.Compare(hash, "wrongpass"))
}

func TestBcryptHasherHashesAreSalted(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("longpass1")
	require.NoError(t, err)
	second, err := hasher.Hash("longpass1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewBcryptHasherClampsInvalidCost(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(99)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)

	hasher = NewBcryptHasher(-1)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
