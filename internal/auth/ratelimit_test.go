package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		MaxAttempts:     3,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
		CleanupInterval: time.Hour,
	})
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := testLimiter()
	defer rl.Stop()

	rl.RecordFailure("1.2.3.4|jane@example.com")
	rl.RecordFailure("1.2.3.4|jane@example.com")

	assert.True(t, rl.Allow("1.2.3.4|jane@example.com"))
}

func TestRateLimiter_LocksOutAfterMaxAttempts(t *testing.T) {
	rl := testLimiter()
	defer rl.Stop()

	key := "1.2.3.4|jane@example.com"
	rl.RecordFailure(key)
	rl.RecordFailure(key)
	rl.RecordFailure(key)

	assert.False(t, rl.Allow(key))
	// Other keys are unaffected
	assert.True(t, rl.Allow("5.6.7.8|jane@example.com"))
}

func TestRateLimiter_SuccessClearsHistory(t *testing.T) {
	rl := testLimiter()
	defer rl.Stop()

	key := "1.2.3.4|jane@example.com"
	rl.RecordFailure(key)
	rl.RecordFailure(key)
	rl.RecordSuccess(key)
	rl.RecordFailure(key)
	rl.RecordFailure(key)

	assert.True(t, rl.Allow(key))
}
