// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/scribe/internal/config"
)

// Pruner is the slice of the cache the scheduler needs.
type Pruner interface {
	Prune(olderThan time.Time) (int64, error)
}

// CachePruneScheduler periodically removes cache entries that have not
// been used for longer than the configured age. Disabled by default;
// the cache has no other eviction.
type CachePruneScheduler struct {
	cache Pruner
	cfg   config.CachePrune

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCachePruneScheduler creates a new scheduler instance.
func NewCachePruneScheduler(cache Pruner, cfg config.CachePrune) *CachePruneScheduler {
	return &CachePruneScheduler{
		cache: cache,
		cfg:   cfg,
		cron:  cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if pruning is enabled.
func (s *CachePruneScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Cache prune scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runPrune()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("Cache prune scheduler: started with schedule %q, max age %v", s.cfg.Schedule, s.cfg.MaxAge)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler and waits for a running job.
func (s *CachePruneScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Cache prune scheduler: stopped")
}

// RunNow triggers an immediate prune.
func (s *CachePruneScheduler) RunNow() {
	go s.runPrune()
}

// IsRunning returns whether the scheduler is active.
func (s *CachePruneScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next prune will occur.
func (s *CachePruneScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *CachePruneScheduler) runPrune() {
	cutoff := time.Now().Add(-s.cfg.MaxAge)
	start := time.Now()

	removed, err := s.cache.Prune(cutoff)
	if err != nil {
		log.Printf("Cache prune: failed: %v", err)
		return
	}
	log.Printf("Cache prune: removed %d entries unused since %s in %v",
		removed, cutoff.Format(time.RFC3339), time.Since(start).Round(time.Millisecond))
}
