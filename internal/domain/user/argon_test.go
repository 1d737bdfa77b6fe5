package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("password123")
	require.NoError(t, err)
	h2, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "each hash must carry a fresh salt")

	assert.True(t, VerifyPassword("password123", h1))
	assert.True(t, VerifyPassword("password123", h2))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=2,p=2$short",
		"$md5$whatever",
	} {
		assert.False(t, VerifyPassword("password123", hash))
	}
}
