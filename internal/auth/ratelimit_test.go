package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestRateLimiter(t *testing.T) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     3,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
		CleanupInterval: time.Hour,
	})
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiter_LocksAfterMaxAttempts(t *testing.T) {
	rl := newTestRateLimiter(t)

	allowed, _ := rl.Allow("1.2.3.4", "dm@example.com")
	assert.True(t, allowed)

	rl.RecordFailure("1.2.3.4", "dm@example.com")
	rl.RecordFailure("1.2.3.4", "dm@example.com")
	allowed, _ = rl.Allow("1.2.3.4", "dm@example.com")
	assert.True(t, allowed)

	rl.RecordFailure("1.2.3.4", "dm@example.com")
	allowed, retryAfter := rl.Allow("1.2.3.4", "dm@example.com")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := newTestRateLimiter(t)

	for i := 0; i < 3; i++ {
		rl.RecordFailure("1.2.3.4", "dm@example.com")
	}

	allowed, _ := rl.Allow("1.2.3.4", "dm@example.com")
	assert.False(t, allowed)

	// Other identifiers and other source addresses stay unaffected.
	allowed, _ = rl.Allow("1.2.3.4", "other@example.com")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("5.6.7.8", "dm@example.com")
	assert.True(t, allowed)
}

func TestRateLimiter_SuccessResetsCounter(t *testing.T) {
	rl := newTestRateLimiter(t)

	rl.RecordFailure("1.2.3.4", "dm@example.com")
	rl.RecordFailure("1.2.3.4", "dm@example.com")
	rl.RecordSuccess("1.2.3.4", "dm@example.com")

	rl.RecordFailure("1.2.3.4", "dm@example.com")
	rl.RecordFailure("1.2.3.4", "dm@example.com")
	allowed, _ := rl.Allow("1.2.3.4", "dm@example.com")
	assert.True(t, allowed)
}

func TestRateLimiter_ExpiredWindowStartsFresh(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     2,
		WindowDuration:  10 * time.Millisecond,
		LockoutDuration: 10 * time.Millisecond,
		CleanupInterval: time.Hour,
	})
	defer rl.Stop()

	rl.RecordFailure("1.2.3.4", "dm@example.com")
	rl.RecordFailure("1.2.3.4", "dm@example.com")
	allowed, _ := rl.Allow("1.2.3.4", "dm@example.com")
	assert.False(t, allowed)

	time.Sleep(20 * time.Millisecond)

	allowed, _ = rl.Allow("1.2.3.4", "dm@example.com")
	assert.True(t, allowed)
}
