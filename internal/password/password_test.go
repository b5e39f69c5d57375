package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(4)

	digest, err := h.Hash("12345")
	require.NoError(t, err)

	assert.NotEqual(t, "12345", digest)
	assert.True(t, h.Verify("12345", digest))
	assert.False(t, h.Verify("xxx", digest))
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	h := NewBcryptHasher(4)

	first, err := h.Hash("secret")
	require.NoError(t, err)
	second, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret", first))
	assert.True(t, h.Verify("secret", second))
}

func TestBcryptHasher_VerifyRejectsGarbageDigest(t *testing.T) {
	h := NewBcryptHasher(4)
	assert.False(t, h.Verify("secret", "not-a-bcrypt-digest"))
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptHasher(1).cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

func TestBcryptHasher_RejectsOverlongPassword(t *testing.T) {
	h := NewBcryptHasher(4)

	_, err := h.Hash(strings.Repeat("a", MaxLength))
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", MaxLength+1))
	assert.ErrorIs(t, err, ErrTooLong)
}
