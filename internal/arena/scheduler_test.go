package arena

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskHandle_CancelIsNilSafe(t *testing.T) {
	var h *TaskHandle
	assert.NotPanics(t, func() { h.Cancel() })
}

func TestTaskHandle_CancelIsIdempotent(t *testing.T) {
	h := spawnAfter(time.Hour, func() {})
	h.Cancel()
	assert.NotPanics(t, func() { h.Cancel() })
}

func TestSpawnAfter_FiresWhenNotCancelled(t *testing.T) {
	done := make(chan struct{})
	spawnAfter(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not fire in time")
	}
}

func TestSpawnAfter_CancelledTaskNeverFires(t *testing.T) {
	var fired int32
	h := spawnAfter(30*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
	h.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestSpawnCountdownTicker_StopsWhenOnTickReturnsFalse(t *testing.T) {
	var ticks int32
	done := make(chan struct{})
	spawnCountdownTicker(100, func(tick int) bool {
		n := atomic.AddInt32(&ticks, 1)
		if n >= 2 {
			close(done)
			return false
		}
		return true
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ticker never reached the stop condition")
	}
	// give the goroutine a moment to actually exit after returning false.
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&ticks))
}
