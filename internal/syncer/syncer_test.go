package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"onbid-goods-api/internal/config"
	"onbid-goods-api/internal/domain"
	"onbid-goods-api/internal/onbid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeFetcher struct {
	result  *domain.SearchResult
	err     error
	filters onbid.SearchFilters
	calls   int
}

func (f *fakeFetcher) SearchGoods(_ context.Context, filters onbid.SearchFilters) (*domain.SearchResult, error) {
	f.calls++
	f.filters = filters
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeSaver struct {
	saved []domain.Goods
	err   error
}

func (s *fakeSaver) SaveGoodsList(_ context.Context, goods []domain.Goods) (int, error) {
	s.saved = goods
	if s.err != nil {
		return 0, s.err
	}
	return len(goods), nil
}

func testSyncConfig() config.SyncConfig {
	return config.SyncConfig{
		Interval:   60 * time.Second,
		PageSize:   9999,
		DedupLimit: 100,
		Enabled:    true,
	}
}

func TestRunCycle_success(t *testing.T) {
	fetcher := &fakeFetcher{result: &domain.SearchResult{
		Items: []domain.Goods{
			goodsItem("A", 10),
			goodsItem("A", 30),
			goodsItem("B", 5),
		},
		TotalCount: 3,
	}}
	saver := &fakeSaver{}
	tracker := NewStatusTracker(60 * time.Second)

	s := New(fetcher, saver, tracker, testSyncConfig())

	saved, err := s.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	// one fetch, broadest page, no filters
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 1, fetcher.filters.PageNo)
	assert.Equal(t, 9999, fetcher.filters.NumOfRows)

	// deduplicated batch handed to the saver
	require.Len(t, saver.saved, 2)
	assert.Equal(t, int64(30), *saver.saved[0].HistoryNo)

	_, ok := tracker.LastSyncedAt()
	assert.True(t, ok, "successful cycle must record a sync timestamp")
}

func TestRunCycle_fetchFailureLeavesStatusUntouched(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	saver := &fakeSaver{}
	tracker := NewStatusTracker(60 * time.Second)

	s := New(fetcher, saver, tracker, testSyncConfig())

	_, err := s.RunCycle(context.Background())
	require.Error(t, err)

	assert.Nil(t, saver.saved, "nothing reaches the store when the fetch fails")
	_, ok := tracker.LastSyncedAt()
	assert.False(t, ok)
}

func TestRunCycle_saveFailureLeavesStatusUntouched(t *testing.T) {
	fetcher := &fakeFetcher{result: &domain.SearchResult{
		Items: []domain.Goods{goodsItem("A", 1)},
	}}
	saver := &fakeSaver{err: errors.New("database gone")}
	tracker := NewStatusTracker(60 * time.Second)

	s := New(fetcher, saver, tracker, testSyncConfig())

	_, err := s.RunCycle(context.Background())
	require.Error(t, err)

	_, ok := tracker.LastSyncedAt()
	assert.False(t, ok)
}

func TestSyncer_StartClose(t *testing.T) {
	fetcher := &fakeFetcher{result: &domain.SearchResult{}}
	saver := &fakeSaver{}
	tracker := NewStatusTracker(60 * time.Second)

	s := New(fetcher, saver, tracker, testSyncConfig())
	s.Start()
	s.Start() // second Start is a no-op

	assert.False(t, s.Running())
	s.Close()
	s.Close() // Close is idempotent too
}

func TestSyncer_CloseWithoutStart(t *testing.T) {
	s := New(&fakeFetcher{}, &fakeSaver{}, NewStatusTracker(time.Minute), testSyncConfig())
	s.Close() // must not block waiting on a loop that never ran
}
