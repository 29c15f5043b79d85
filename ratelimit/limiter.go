// Package ratelimit tracks failed authentication attempts per key and
// enforces lockout once a sliding-window threshold is reached. Keys are
// opaque; callers throttle identity and origin as separate keys.
package ratelimit

import (
	"sync"
	"time"
)

const (
	defaultThreshold = 5
	defaultWindow    = 15 * time.Minute
	maxTrackedKeys   = 5000
)

// Limiter counts failures per key over a trailing window. Entries older
// than the window are purged lazily on every read or mutation, so no
// background sweep is needed for correctness. All operations on the shared
// table run under a single mutex.
type Limiter struct {
	mu        sync.Mutex
	threshold int
	window    time.Duration
	failures  map[string][]time.Time
	nowTime   func() time.Time // injectable for testing
}

// LimiterOption defines a function type to modify the Limiter instance.
type LimiterOption func(*Limiter)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) LimiterOption {
	return func(l *Limiter) {
		l.nowTime = nowFunc
	}
}

// NewLimiter creates a Limiter. Non-positive arguments fall back to the
// defaults (5 failures in 15 minutes).
func NewLimiter(threshold int, window time.Duration, options ...LimiterOption) *Limiter {
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	if window <= 0 {
		window = defaultWindow
	}

	limiter := &Limiter{
		threshold: threshold,
		window:    window,
		failures:  make(map[string][]time.Time),
		nowTime:   time.Now,
	}

	for _, opt := range options {
		opt(limiter)
	}

	return limiter
}

// Allow reports whether an attempt for the key may proceed. It returns
// false once the failure count within the trailing window has reached the
// threshold.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.purgeLocked(key, l.nowTime())) < l.threshold
}

// RecordFailure appends a failure timestamp for the key.
func (l *Limiter) RecordFailure(key string) {
	now := l.nowTime()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures[key] = append(l.purgeLocked(key, now), now)

	if len(l.failures) > maxTrackedKeys {
		l.sweepLocked(now)
	}
}

// Reset clears the key's failure record immediately. Called on successful
// authentication so stale counts never outlive a correct login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.failures, key)
}

// RetryAfter returns how long until the key's oldest in-window failure
// ages out. Zero means the key is not currently limited.
func (l *Limiter) RetryAfter(key string) time.Duration {
	now := l.nowTime()

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.purgeLocked(key, now)
	if len(recent) < l.threshold {
		return 0
	}

	retryAfter := recent[0].Add(l.window).Sub(now)
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return retryAfter
}

// purgeLocked drops entries older than the window and returns what remains.
// Callers must hold l.mu.
func (l *Limiter) purgeLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)

	hits := l.failures[key]
	filtered := hits[:0]
	for _, hit := range hits {
		if hit.After(cutoff) {
			filtered = append(filtered, hit)
		}
	}

	if len(filtered) == 0 {
		delete(l.failures, key)
		return nil
	}
	l.failures[key] = filtered
	return filtered
}

// sweepLocked drops keys whose newest failure has aged out, bounding table
// growth under sustained attack traffic. Callers must hold l.mu.
func (l *Limiter) sweepLocked(now time.Time) {
	cutoff := now.Add(-l.window)
	for key, hits := range l.failures {
		if len(hits) == 0 || hits[len(hits)-1].Before(cutoff) {
			delete(l.failures, key)
		}
	}
}
