package syncer

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"onbid-goods-api/internal/config"
	"onbid-goods-api/internal/domain"
	"onbid-goods-api/internal/onbid"
)

// GoodsFetcher pulls one page of listings from the external source.
type GoodsFetcher interface {
	SearchGoods(ctx context.Context, filters onbid.SearchFilters) (*domain.SearchResult, error)
}

// GoodsSaver persists a deduplicated batch and reports how many records
// were actually written.
type GoodsSaver interface {
	SaveGoodsList(ctx context.Context, goods []domain.Goods) (int, error)
}

// Syncer drives the periodic fetch → parse → dedupe → upsert cycle. One
// goroutine owns the loop, so at most one cycle runs at a time; the running
// flag only exposes that state to the status endpoint.
type Syncer struct {
	fetcher GoodsFetcher
	saver   GoodsSaver
	tracker *StatusTracker

	interval   time.Duration
	pageSize   int
	dedupLimit int

	started  atomic.Bool
	running  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// New creates a syncer from its collaborators and the sync configuration.
func New(fetcher GoodsFetcher, saver GoodsSaver, tracker *StatusTracker, cfg config.SyncConfig) *Syncer {
	return &Syncer{
		fetcher:    fetcher,
		saver:      saver,
		tracker:    tracker,
		interval:   cfg.Interval,
		pageSize:   cfg.PageSize,
		dedupLimit: cfg.DedupLimit,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the background sync loop. Calling it twice is a no-op.
func (s *Syncer) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	log.Printf("[Syncer] started with %v interval", s.interval)
}

// run waits until the next interval boundary, then cycles on a fixed ticker.
func (s *Syncer) run() {
	defer close(s.done)

	// Align the first tick to the wall-clock boundary (minute boundary for
	// the default 60s interval).
	now := time.Now()
	first := time.NewTimer(now.Truncate(s.interval).Add(s.interval).Sub(now))
	defer first.Stop()

	select {
	case <-first.C:
	case <-s.stop:
		return
	}
	s.cycle()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cycle()
		case <-s.stop:
			return
		}
	}
}

// cycle runs one sync pass. Every failure is logged and swallowed here: a
// bad cycle leaves the snapshot and the status timestamp untouched, and the
// next tick tries again.
func (s *Syncer) cycle() {
	s.running.Store(true)
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	if _, err := s.RunCycle(ctx); err != nil {
		log.Printf("[Syncer] sync cycle failed: %v", err)
	}
}

// RunCycle executes one full synchronization cycle and returns the number
// of records written. The status timestamp is only updated on success, so
// "next sync due" always reflects the last successful run.
func (s *Syncer) RunCycle(ctx context.Context) (int, error) {
	log.Println("[Syncer] sync cycle started")

	// Broadest available snapshot: first page, maximal page size, no filters.
	result, err := s.fetcher.SearchGoods(ctx, onbid.SearchFilters{
		PageNo:    1,
		NumOfRows: s.pageSize,
	})
	if err != nil {
		return 0, err
	}

	latest := SelectFreshest(result.Items, s.dedupLimit)

	saved, err := s.saver.SaveGoodsList(ctx, latest)
	if err != nil {
		return 0, err
	}

	s.tracker.MarkSynced(time.Now())
	log.Printf("[Syncer] sync cycle completed - %d of %d fetched records written", saved, len(result.Items))
	return saved, nil
}

// Running reports whether a cycle is currently in progress.
func (s *Syncer) Running() bool {
	return s.running.Load()
}

// Close stops the loop and waits for an in-flight cycle to finish.
func (s *Syncer) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	if s.started.Load() {
		<-s.done
	}
}
