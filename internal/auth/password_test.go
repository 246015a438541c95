package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher_CostRange(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewPasswordHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)

	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotNil(t, h)
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash1, err := h.Hash("secret1")
	require.NoError(t, err)
	hash2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash1)
	assert.NotEqual(t, hash1, hash2, "hashes must be salted")

	cost, err := bcrypt.Cost([]byte(hash1))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, h.Verify("secret1", hash1))
	assert.True(t, h.Verify("secret1", hash2))
	assert.False(t, h.Verify("wrong12", hash1))
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	for _, hash := range []string{"", "invalidhash", "$2a$04$short"} {
		assert.False(t, h.Verify("secret1", hash), "hash %q", hash)
	}
}

func TestPasswordHasher_LongPassword(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	long := strings.Repeat("p", 255)
	hash, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Verify(long, hash))
}
