package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cardlink/config"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestLimiter_AllowWithinLimit(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	limiter := newLimiter(&config.RateLimitConfig{ScanLimit: 3, ScanWindow: time.Minute}, clock.Now)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	// Another key has its own window.
	assert.True(t, limiter.Allow("5.6.7.8"))
}

func TestLimiter_WindowReset(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	limiter := newLimiter(&config.RateLimitConfig{ScanLimit: 1, ScanWindow: time.Minute}, clock.Now)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	clock.Advance(61 * time.Second)
	assert.True(t, limiter.Allow("1.2.3.4"))
}

func TestLimiter_EvictExpired(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	limiter := newLimiter(&config.RateLimitConfig{ScanLimit: 1, ScanWindow: time.Minute}, clock.Now)

	limiter.Allow("1.2.3.4")
	limiter.Allow("5.6.7.8")

	clock.Advance(2 * time.Minute)
	limiter.evictExpired()

	limiter.mu.Lock()
	remaining := len(limiter.windows)
	limiter.mu.Unlock()
	assert.Zero(t, remaining)
}

func TestLimiter_Defaults(t *testing.T) {
	limiter := newLimiter(nil, time.Now)
	assert.Equal(t, defaultLimit, limiter.limit)
	assert.Equal(t, defaultWindow, limiter.window)
}

func TestLimiter_SweeperLifecycle(t *testing.T) {
	limiter := newLimiter(&config.RateLimitConfig{SweepInterval: time.Millisecond}, time.Now)

	limiter.StartSweeper()
	time.Sleep(5 * time.Millisecond)
	limiter.StopSweeper()
}
