package syncer

import (
	"sync"
	"time"
)

// StatusTracker is the process-wide record of the last successful sync
// cycle: a single cell with one writer (the sync loop) and many readers
// (the status endpoint). It is deliberately not persisted; a restart resets
// the countdown until the next cycle completes.
type StatusTracker struct {
	mu           sync.RWMutex
	lastSyncedAt time.Time
	synced       bool
	interval     time.Duration
}

// NewStatusTracker creates an empty tracker for the given sync interval.
func NewStatusTracker(interval time.Duration) *StatusTracker {
	return &StatusTracker{interval: interval}
}

// MarkSynced records the completion time of a successful cycle.
func (t *StatusTracker) MarkSynced(syncedAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSyncedAt = syncedAt
	t.synced = true
}

// LastSyncedAt returns the last successful sync time, or ok=false if no
// cycle has completed since process start.
func (t *StatusTracker) LastSyncedAt() (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastSyncedAt, t.synced
}

// NextSyncAt returns lastSyncedAt plus the sync interval.
func (t *StatusTracker) NextSyncAt() (time.Time, bool) {
	last, ok := t.LastSyncedAt()
	if !ok {
		return time.Time{}, false
	}
	return last.Add(t.interval), true
}

// SecondsUntilNextSync returns the non-negative number of seconds until the
// next cycle is due, or -1 if no cycle has ever completed.
func (t *StatusTracker) SecondsUntilNextSync() int64 {
	next, ok := t.NextSyncAt()
	if !ok {
		return -1
	}

	seconds := int64(time.Until(next).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// Interval returns the fixed sync interval.
func (t *StatusTracker) Interval() time.Duration {
	return t.interval
}
