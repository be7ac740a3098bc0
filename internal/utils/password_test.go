package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pass1234")
	require.NoError(t, err)
	assert.NotEqual(t, "pass1234", hash)

	// The salt makes every hash unique.
	other, err := HashPassword("pass1234")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword("correct-horse", hash))
	assert.False(t, CheckPassword("wrong-horse", hash))
	assert.False(t, CheckPassword("correct-horse", "not-a-bcrypt-hash"))
}

func TestGenerateResetToken(t *testing.T) {
	raw, hashed, expires, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, raw, ResetTokenBytes*2)
	assert.NotEqual(t, raw, hashed)
	assert.Equal(t, hashed, HashResetToken(raw))
	assert.WithinDuration(t, time.Now().Add(ResetTokenExpiry), expires, time.Second)
}

func TestHashResetToken(t *testing.T) {
	// Deterministic, unlike the password hash: lookups match on the digest.
	assert.Equal(t, HashResetToken("abc123"), HashResetToken("abc123"))
	assert.NotEqual(t, HashResetToken("abc123"), HashResetToken("abc124"))
}
