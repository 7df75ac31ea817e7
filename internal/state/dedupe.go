// Package state holds the engine's small mutable bookkeeping: the
// answered-thread tracker, runtime counters and the interaction log.
package state

import (
	"sync"
	"time"
)

// ThreadTracker remembers which threads already received an answer so the
// same thread is never answered twice. Records expire after a TTL.
type ThreadTracker struct {
	mu       sync.Mutex
	ttl      time.Duration
	answered map[string]time.Time
	now      func() time.Time
}

// NewThreadTracker creates a tracker with the given record TTL.
func NewThreadTracker(ttl time.Duration) *ThreadTracker {
	return NewThreadTrackerWithClock(ttl, time.Now)
}

// NewThreadTrackerWithClock creates a tracker with an injected clock.
func NewThreadTrackerWithClock(ttl time.Duration, now func() time.Time) *ThreadTracker {
	return &ThreadTracker{
		ttl:      ttl,
		answered: make(map[string]time.Time),
		now:      now,
	}
}

// IsAnswered reports whether the thread has a live answered record.
func (t *ThreadTracker) IsAnswered(threadKey string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cleanupLocked()
	_, ok := t.answered[threadKey]
	return ok
}

// MarkAnswered records that the thread has been answered.
func (t *ThreadTracker) MarkAnswered(threadKey string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.answered[threadKey] = t.now()
}

// Size returns the number of live records.
func (t *ThreadTracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cleanupLocked()
	return len(t.answered)
}

func (t *ThreadTracker) cleanupLocked() {
	now := t.now()
	for key, at := range t.answered {
		if now.Sub(at) > t.ttl {
			delete(t.answered, key)
		}
	}
}
