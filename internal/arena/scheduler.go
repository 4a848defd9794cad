package arena

import (
	"context"
	"log"
	"time"
)

// TaskHandle is a cancellable handle to a spawned background task. Cancel is
// idempotent and safe to call on a nil handle (a state that never spawned a
// task, e.g. a lobby with no countdown running).
//
// Grounded on internal/game/timer.go's StartPhaseTimer/CancelPhaseTimer in the
// teacher repo, generalized from one room-scoped timer to any cancellable task.
type TaskHandle struct {
	cancel context.CancelFunc
}

func (h *TaskHandle) Cancel() {
	if h == nil {
		return
	}
	h.cancel()
}

// spawnAfter runs fn once after d elapses, unless cancelled first. fn is
// responsible for re-validating, under the room lock, that the condition it
// was scheduled for still holds (spec's "lookup-by-key on wake" discipline) —
// the task captures no *Room and no direct reference into game state, only
// plain values it needs to re-look-up and compare against on wake.
func spawnAfter(d time.Duration, fn func()) *TaskHandle {
	ctx, cancel := context.WithCancel(context.Background())
	handle := &TaskHandle{cancel: cancel}

	timer := time.NewTimer(d)
	go func() {
		defer timer.Stop()
		select {
		case <-ctx.Done():
			log.Printf("[scheduler] task cancelled before firing")
			return
		case <-timer.C:
			fn()
		}
	}()
	return handle
}

// spawnCountdownTicker runs onTick once per second, up to maxTicks times,
// passing the 1-based tick number. onTick returns false to stop the loop
// early (the countdown either completed or its guard condition no longer holds).
func spawnCountdownTicker(maxTicks int, onTick func(tick int) bool) *TaskHandle {
	ctx, cancel := context.WithCancel(context.Background())
	handle := &TaskHandle{cancel: cancel}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for i := 0; i < maxTicks; i++ {
			select {
			case <-ctx.Done():
				log.Printf("[scheduler] countdown ticker cancelled at tick %d", i)
				return
			case <-ticker.C:
				if !onTick(i + 1) {
					return
				}
			}
		}
	}()
	return handle
}

func durationFromSeconds(s float64) time.Duration {
	if s < 0 {
		s = 0
	}
	return time.Duration(s * float64(time.Second))
}
