package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	hash, err := b.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, b.ComparePassword(hash, "s3cret-pass"))
	assert.Error(t, b.ComparePassword(hash, "wrong"))
}

func TestHashIsSalted(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	first, err := b.HashPassword("same")
	require.NoError(t, err)
	second, err := b.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
