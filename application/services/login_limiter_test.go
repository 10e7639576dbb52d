package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(maxAttempts int, window time.Duration) (*LoginLimiter, *time.Time) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewLoginLimiter(NewMemoryAttemptStore(), maxAttempts, window)
	limiter.now = func() time.Time { return now }
	return limiter, &now
}

func TestLimiterBlocksAfterMaxAttempts(t *testing.T) {
	limiter, _ := newTestLimiter(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("alice"), "attempt %d", i+1)
	}
	assert.False(t, limiter.Allow("alice"))
	assert.False(t, limiter.Allow("alice"))
}

func TestLimiterWindowExpiryRestartsCount(t *testing.T) {
	limiter, now := newTestLimiter(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		limiter.Allow("alice")
	}
	assert.False(t, limiter.Allow("alice"))

	*now = now.Add(16 * time.Minute)
	assert.True(t, limiter.Allow("alice"), "an expired window starts fresh")
}

func TestLimiterResetClearsCounter(t *testing.T) {
	limiter, _ := newTestLimiter(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		limiter.Allow("alice")
	}
	assert.False(t, limiter.Allow("alice"))

	limiter.Reset("alice")
	assert.True(t, limiter.Allow("alice"))
}

func TestLimiterTracksIdentitiesSeparately(t *testing.T) {
	limiter, _ := newTestLimiter(2, 15*time.Minute)

	assert.True(t, limiter.Allow("alice"))
	assert.True(t, limiter.Allow("alice"))
	assert.False(t, limiter.Allow("alice"))
	assert.True(t, limiter.Allow("bob"))
}
