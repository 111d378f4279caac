package scheduler

import (
	"context"
	"sync"

	"github.com/spacetrucker2196/galacticcic/internal/collector"
	"github.com/spacetrucker2196/galacticcic/internal/output"
)

// CollectorResult is one collector's outcome from a RunOnce cycle,
// exported for the `collect` CLI verb's JSON output.
type CollectorResult struct {
	Collector string `json:"collector"`
	Tier      string `json:"tier"`
	State     string `json:"state"`
	Detail    string `json:"detail,omitempty"`
}

// RunOnce runs every collector across all tiers exactly once, in
// parallel, and waits for all of them to finish -- the synchronous
// single-cycle mode the `collect` verb exposes, as opposed to Run's
// perpetual ticking. progress mirrors the teacher's per-collector
// start/done logging; pass a disabled Progress for quiet runs.
func RunOnce(ctx context.Context, deps collector.Deps, collectors []collector.Collector, progress *output.Progress) []CollectorResult {
	var (
		mu      sync.Mutex
		results []CollectorResult
		wg      sync.WaitGroup
	)

	for _, c := range collectors {
		wg.Add(1)
		go func(c collector.Collector) {
			defer wg.Done()
			progress.Log("[%s] collecting...", c.Name())
			out := c.Collect(ctx, deps)
			progress.Log("[%s] %s", c.Name(), out.State.String())

			mu.Lock()
			results = append(results, CollectorResult{
				Collector: c.Name(),
				Tier:      c.Tier().String(),
				State:     out.State.String(),
				Detail:    out.Detail,
			})
			mu.Unlock()
		}(c)
	}

	wg.Wait()
	return results
}
