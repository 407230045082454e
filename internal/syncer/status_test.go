package syncer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTracker_beforeFirstSync(t *testing.T) {
	tracker := NewStatusTracker(60 * time.Second)

	_, ok := tracker.LastSyncedAt()
	assert.False(t, ok)
	_, ok = tracker.NextSyncAt()
	assert.False(t, ok)
	assert.Equal(t, int64(-1), tracker.SecondsUntilNextSync())
}

func TestStatusTracker_afterSync(t *testing.T) {
	tracker := NewStatusTracker(60 * time.Second)
	syncedAt := time.Now()
	tracker.MarkSynced(syncedAt)

	last, ok := tracker.LastSyncedAt()
	require.True(t, ok)
	assert.Equal(t, syncedAt, last)

	next, ok := tracker.NextSyncAt()
	require.True(t, ok)
	assert.Equal(t, syncedAt.Add(60*time.Second), next)

	seconds := tracker.SecondsUntilNextSync()
	assert.InDelta(t, 60, seconds, 2)
}

func TestStatusTracker_overdueClampsToZero(t *testing.T) {
	tracker := NewStatusTracker(60 * time.Second)
	tracker.MarkSynced(time.Now().Add(-5 * time.Minute))

	assert.Equal(t, int64(0), tracker.SecondsUntilNextSync())
}

func TestStatusTracker_latestMarkWins(t *testing.T) {
	tracker := NewStatusTracker(60 * time.Second)
	first := time.Now().Add(-time.Minute)
	second := time.Now()
	tracker.MarkSynced(first)
	tracker.MarkSynced(second)

	last, ok := tracker.LastSyncedAt()
	require.True(t, ok)
	assert.Equal(t, second, last)
}
