package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/collector"
	"github.com/spacetrucker2196/galacticcic/internal/model"
)

type countingCollector struct {
	name  string
	tier  collector.Tier
	calls int32
}

func (c *countingCollector) Name() string         { return c.name }
func (c *countingCollector) Tier() collector.Tier { return c.tier }
func (c *countingCollector) Collect(ctx context.Context, deps collector.Deps) collector.Outcome {
	atomic.AddInt32(&c.calls, 1)
	return collector.Outcome{State: model.StateOK}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunInvokesEachTierAtLeastOnceThenStopsOnCancel(t *testing.T) {
	orig := TierInterval[collector.TierFast]
	TierInterval[collector.TierFast] = 10 * time.Millisecond
	defer func() { TierInterval[collector.TierFast] = orig }()

	fast := &countingCollector{name: "a", tier: collector.TierFast}
	slow := &countingCollector{name: "b", tier: collector.TierSlow}

	s := New(collector.Deps{}, []collector.Collector{fast, slow}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := s.Run(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, atomic.LoadInt32(&fast.calls), int32(2))
	require.Equal(t, int32(1), atomic.LoadInt32(&slow.calls))
}

func TestRunSkipsTiersWithNoCollectors(t *testing.T) {
	s := New(collector.Deps{}, nil, testLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))
}
