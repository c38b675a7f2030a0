// Package ratelimit provides per-client token buckets for the HTTP API.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket: tokens refill at a fixed rate up to the burst
// capacity and each allowed request consumes one.
type Limiter struct {
	tokens     float64
	lastTime   time.Time
	lastAccess time.Time
	rate       float64
	capacity   float64
	now        func() time.Time
	mu         sync.Mutex
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// newLimiterAt creates a full bucket with the given refill rate and capacity.
// now is the clock the bucket refills against.
func newLimiterAt(rate float64, burst int, now func() time.Time) *Limiter {
	t := now()
	return &Limiter{
		tokens:     float64(burst),
		lastTime:   t,
		lastAccess: t,
		rate:       rate,
		capacity:   float64(burst),
		now:        now,
	}
}

// Allow consumes a token if one is available.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if elapsed := now.Sub(l.lastTime).Seconds(); elapsed > 0 {
		l.tokens += elapsed * l.rate
	}
	l.lastTime = now
	l.lastAccess = now

	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// RetryAfter estimates how long until the next token is available.
func (l *Limiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tokens >= 1 || l.rate <= 0 {
		return 0
	}
	missing := 1 - l.tokens
	return time.Duration(missing / l.rate * float64(time.Second))
}

// idleSince reports whether the limiter has not been used since t.
func (l *Limiter) idleSince(t time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastAccess.Before(t)
}
