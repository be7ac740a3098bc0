package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordChangedAfter(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	user := &User{}
	assert.False(t, user.PasswordChangedAfter(issued), "no rotation stamp means never changed")

	after := issued.Add(time.Hour)
	user.PasswordChangedAt = &after
	assert.True(t, user.PasswordChangedAfter(issued))

	before := issued.Add(-time.Hour)
	user.PasswordChangedAt = &before
	assert.False(t, user.PasswordChangedAfter(issued))

	// Sub-second skew within the same second must not invalidate the token.
	sameSecond := issued.Add(500 * time.Millisecond)
	user.PasswordChangedAt = &sameSecond
	assert.False(t, user.PasswordChangedAfter(issued))
}

func TestResetTokenValid(t *testing.T) {
	now := time.Now()
	future := now.Add(5 * time.Minute)
	past := now.Add(-5 * time.Minute)

	user := &User{}
	assert.False(t, user.ResetTokenValid(now), "no token")

	user.PasswordResetToken = "digest"
	assert.False(t, user.ResetTokenValid(now), "no expiry")

	user.PasswordResetExpires = &past
	assert.False(t, user.ResetTokenValid(now), "expired")

	user.PasswordResetExpires = &future
	assert.True(t, user.ResetTokenValid(now))
}
