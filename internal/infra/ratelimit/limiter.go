// Package ratelimit provides a fixed window per-key limiter used to
// throttle unauthenticated scan recording.
package ratelimit

import (
	"sync"
	"time"

	"cardlink/config"
)

const (
	defaultLimit         = 10
	defaultWindow        = time.Minute
	defaultSweepInterval = 5 * time.Minute
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter counts hits per key inside a fixed window. Windows reset when
// they expire; a background sweeper evicts stale keys so the map does
// not grow without bound.
type Limiter struct {
	limit         int
	window        time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	mu      sync.Mutex
	windows map[string]*window

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewLimiter creates a Limiter from configuration.
func NewLimiter(cfg *config.Config) *Limiter {
	return newLimiter(cfg.RateLimit, time.Now)
}

func newLimiter(cfg *config.RateLimitConfig, now func() time.Time) *Limiter {
	limiter := &Limiter{
		limit:         defaultLimit,
		window:        defaultWindow,
		sweepInterval: defaultSweepInterval,
		now:           now,
		windows:       make(map[string]*window),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}

	if cfg != nil {
		if cfg.ScanLimit > 0 {
			limiter.limit = cfg.ScanLimit
		}
		if cfg.ScanWindow > 0 {
			limiter.window = cfg.ScanWindow
		}
		if cfg.SweepInterval > 0 {
			limiter.sweepInterval = cfg.SweepInterval
		}
	}

	return limiter
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.window)}

		return true
	}

	w.count++

	return w.count <= l.limit
}

// StartSweeper launches the goroutine that drops expired windows.
func (l *Limiter) StartSweeper() {
	go func() {
		defer close(l.done)

		ticker := time.NewTicker(l.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.evictExpired()
			case <-l.stop:
				return
			}
		}
	}()
}

// StopSweeper stops the sweeper goroutine and waits for it to exit.
func (l *Limiter) StopSweeper() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
	<-l.done
}

func (l *Limiter) evictExpired() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
		}
	}
}
