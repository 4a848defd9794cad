package ratelimit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLimiter_BurstThenReject(t *testing.T) {
	l := New(8, 24)
	id := uuid.New()

	for i := 0; i < 24; i++ {
		assert.True(t, l.Allow(id), "request %d within burst should be allowed", i)
	}
	assert.False(t, l.Allow(id), "25th immediate request should be rejected")
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	l := New(8, 24)
	id := uuid.New()

	for i := 0; i < 24; i++ {
		require := l.Allow(id)
		assert.True(t, require)
	}
	assert.False(t, l.Allow(id))

	l.mu.Lock()
	l.buckets[id].lastRefill = l.buckets[id].lastRefill.Add(-250 * time.Millisecond)
	l.mu.Unlock()

	assert.True(t, l.Allow(id), "after ~2 tokens worth of elapsed time, one more request should be allowed")
}

func TestLimiter_PerIdentityIsolation(t *testing.T) {
	l := New(8, 24)
	a, b := uuid.New(), uuid.New()

	for i := 0; i < 24; i++ {
		l.Allow(a)
	}
	assert.False(t, l.Allow(a))
	assert.True(t, l.Allow(b), "a separate identity must have its own bucket")
}
