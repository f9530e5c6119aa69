// Package ratelimit throttles submissions per delivery target with a token
// bucket per key.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter hands out tokens per key at a fixed rate. Each bucket holds at
// most one second's worth of tokens and starts full.
type Limiter struct {
	rate float64
	now  func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// New creates a limiter allowing perSecond requests per key. A perSecond
// of 0 or less disables limiting.
func New(perSecond int) *Limiter {
	return &Limiter{
		rate:    float64(perSecond),
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// WithClock replaces the time source. Used by tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Enabled reports whether the limiter throttles at all.
func (l *Limiter) Enabled() bool {
	return l != nil && l.rate > 0
}

// Reserve takes a token for key. When none is available it reports how
// long until the next one refills.
func (l *Limiter) Reserve(key string) (bool, time.Duration) {
	if !l.Enabled() {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucketFor(key)
	l.refill(b)

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	missing := 1 - b.tokens
	return false, time.Duration(missing / l.rate * float64(time.Second))
}

func (l *Limiter) bucketFor(key string) *bucket {
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.rate, lastFill: l.now()}
		l.buckets[key] = b
	}
	return b
}

func (l *Limiter) refill(b *bucket) {
	now := l.now()
	b.tokens += now.Sub(b.lastFill).Seconds() * l.rate
	if b.tokens > l.rate {
		b.tokens = l.rate
	}
	b.lastFill = now
}
