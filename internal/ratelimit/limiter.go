// Package ratelimit implements a per-identity token bucket used to bound how
// fast a single client can push messages into the arena. No suitable
// third-party rate limiter turned up in the retrieved example pack (the one
// go.mod reference to golang.org/x/time/rate was never actually imported by
// any retrieved file), so this hand-rolls the bucket the way
// t0m0m0-shiritori/srv/ratelimit.go does: stdlib sync + time only.
package ratelimit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Limiter hands out per-identity token buckets, created lazily on first use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[uuid.UUID]*bucket
	rate    float64 // tokens replenished per second
	burst   float64 // bucket capacity
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// New creates a Limiter that sustains rate tokens/sec with the given burst capacity.
func New(rate float64, burst int) *Limiter {
	return &Limiter{
		buckets: make(map[uuid.UUID]*bucket),
		rate:    rate,
		burst:   float64(burst),
	}
}

// Allow reports whether identity may send one more message right now,
// consuming a token if so.
func (l *Limiter) Allow(identity uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.burst, lastRefill: now}
		l.buckets[identity] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(l.burst, b.tokens+elapsed*l.rate)
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Forget drops the bucket for identity, e.g. once a client disconnects for good.
func (l *Limiter) Forget(identity uuid.UUID) {
	l.mu.Lock()
	delete(l.buckets, identity)
	l.mu.Unlock()
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
