package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/scribe/internal/config"
)

type fakePruner struct {
	mu      sync.Mutex
	calls   int
	cutoffs []time.Time
}

func (p *fakePruner) Prune(olderThan time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.cutoffs = append(p.cutoffs, olderThan)
	return 3, nil
}

func (p *fakePruner) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestCachePruneScheduler_DisabledByDefault(t *testing.T) {
	s := NewCachePruneScheduler(&fakePruner{}, config.CachePrune{Enabled: false})

	require.NoError(t, s.Start(context.Background()))

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestCachePruneScheduler_StartStop(t *testing.T) {
	s := NewCachePruneScheduler(&fakePruner{}, config.CachePrune{
		Enabled:  true,
		Schedule: "0 3 * * *",
		MaxAge:   720 * time.Hour,
	})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.GetNextRunTime())

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestCachePruneScheduler_InvalidSchedule(t *testing.T) {
	s := NewCachePruneScheduler(&fakePruner{}, config.CachePrune{
		Enabled:  true,
		Schedule: "not a schedule",
	})

	assert.Error(t, s.Start(context.Background()))
}

func TestCachePruneScheduler_RunNow(t *testing.T) {
	pruner := &fakePruner{}
	s := NewCachePruneScheduler(pruner, config.CachePrune{MaxAge: time.Hour})

	s.RunNow()

	require.Eventually(t, func() bool {
		return pruner.callCount() == 1
	}, time.Second, 10*time.Millisecond)

	pruner.mu.Lock()
	defer pruner.mu.Unlock()
	assert.WithinDuration(t, time.Now().Add(-time.Hour), pruner.cutoffs[0], time.Minute)
}

func TestCachePruneScheduler_StopViaContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewCachePruneScheduler(&fakePruner{}, config.CachePrune{
		Enabled:  true,
		Schedule: "0 3 * * *",
	})
	require.NoError(t, s.Start(ctx))

	cancel()

	require.Eventually(t, func() bool {
		return !s.IsRunning()
	}, time.Second, 10*time.Millisecond)
}
