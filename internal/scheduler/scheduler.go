// Package scheduler runs the four independent collection tiers as
// cooperative ticker loops, fans each tick out across that tier's
// collectors in parallel, and owns the process-wide state
// (nmap_active, the keyed caches) that collectors borrow through
// collector.Deps. The fan-out-and-wait shape and the
// signal-handling-goroutine-started-after-context-derivation ordering
// follow internal/orchestrator/orchestrator.go's Run method; unlike
// that one-shot orchestrator this scheduler never stops ticking on its
// own, only on shutdown.
package scheduler

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/collector"
)

// TierInterval is how often each tier's ticker fires.
var TierInterval = map[collector.Tier]time.Duration{
	collector.TierFast:    30 * time.Second,
	collector.TierMedium:  2 * time.Minute,
	collector.TierSlow:    5 * time.Minute,
	collector.TierGlacial: 15 * time.Minute,
}

// ShutdownGrace is how long Run waits for in-flight collectors after
// the context is cancelled before returning anyway.
const ShutdownGrace = 5 * time.Second

// Scheduler owns the four tier loops and the shared Deps handed to
// every collector invocation.
type Scheduler struct {
	deps         collector.Deps
	byTier       map[collector.Tier][]collector.Collector
	log          *slog.Logger
	nowOrDefault func() time.Time
}

// New groups collectors by tier and returns a Scheduler ready to Run.
// deps is copied into every tick; collectors must not mutate it.
func New(deps collector.Deps, collectors []collector.Collector, log *slog.Logger) *Scheduler {
	byTier := make(map[collector.Tier][]collector.Collector)
	for _, c := range collectors {
		byTier[c.Tier()] = append(byTier[c.Tier()], c)
	}
	for _, cs := range byTier {
		sort.Slice(cs, func(i, j int) bool { return cs[i].Name() < cs[j].Name() })
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{deps: deps, byTier: byTier, log: log, nowOrDefault: now}
}

// Run starts all four tier loops and blocks until ctx is cancelled or
// a termination signal arrives, then waits up to ShutdownGrace for
// in-flight collectors before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			s.log.Info("received termination signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	defer signal.Stop(sigCh)

	var wg sync.WaitGroup
	for tier, interval := range TierInterval {
		cs := s.byTier[tier]
		if len(cs) == 0 {
			continue
		}
		wg.Add(1)
		go func(tier collector.Tier, interval time.Duration, cs []collector.Collector) {
			defer wg.Done()
			s.runTier(ctx, tier, interval, cs)
		}(tier, interval, cs)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		select {
		case <-done:
			return nil
		case <-time.After(ShutdownGrace):
			s.log.Warn("shutdown grace period elapsed with collectors still in flight")
			return nil
		}
	}
}

// runTier ticks interval forever, running one tick of every collector
// in cs in parallel and waiting for all of them before scheduling the
// next tick, per spec.md's "never concurrent with itself" rule.
func (s *Scheduler) runTier(ctx context.Context, tier collector.Tier, interval time.Duration, cs []collector.Collector) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.tick(ctx, tier, cs)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, tier, cs)
		}
	}
}

// tick runs every collector in cs once, in parallel, and waits for
// all of them to finish before returning.
func (s *Scheduler) tick(ctx context.Context, tier collector.Tier, cs []collector.Collector) {
	var wg sync.WaitGroup
	for _, c := range cs {
		wg.Add(1)
		go func(c collector.Collector) {
			defer wg.Done()
			s.runOne(ctx, c)
		}(c)
	}
	wg.Wait()
}

// runOne invokes one collector, logging its idle->running->outcome
// transition as structured fields.
func (s *Scheduler) runOne(ctx context.Context, c collector.Collector) {
	if ctx.Err() != nil {
		return
	}
	start := s.nowOrDefault()
	out := c.Collect(ctx, s.deps)
	elapsed := s.nowOrDefault().Sub(start)

	attrs := []any{"collector", c.Name(), "tier", c.Tier().String(), "elapsed_ms", elapsed.Milliseconds()}
	if out.Detail != "" {
		attrs = append(attrs, "detail", out.Detail)
	}
	switch out.State.String() {
	case "failed":
		s.log.Error("collector run failed", attrs...)
	case "degraded":
		s.log.Warn("collector run degraded", attrs...)
	default:
		s.log.Info("collector run ok", attrs...)
	}
}
