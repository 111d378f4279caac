package collector

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
)

// TopProcessesCacheKey is the sitrep_cache key top_processes snapshots
// are persisted under; there is no dedicated time-series table for
// process snapshots, so the generic keyed-snapshot mechanism is reused.
const TopProcessesCacheKey = "top_processes"

// TopProcesses runs `ps aux --sort=-%cpu` and persists the first five
// rows after the header as a JSON snapshot.
type TopProcesses struct {
	RunTimeout time.Duration
	RowLimit   int
}

// NewTopProcesses builds the fast-tier top-processes collector.
func NewTopProcesses() *TopProcesses {
	return &TopProcesses{RunTimeout: 5 * time.Second, RowLimit: 5}
}

func (c *TopProcesses) Name() string { return "top_processes" }
func (c *TopProcesses) Tier() Tier   { return TierFast }

func (c *TopProcesses) Collect(ctx context.Context, deps Deps) Outcome {
	res, err := deps.Runner.Run(ctx, c.RunTimeout, "ps", "aux", "--sort=-%cpu")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	if res.Outcome != model.RunOK {
		return Outcome{State: model.StateDegraded, Detail: "ps unavailable: " + res.Outcome.String()}
	}

	records := parser.ParseTopProcesses(res.Stdout, c.RowLimit)
	payload, err := json.Marshal(records)
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}

	entry := model.SitrepCacheEntry{
		Key:      TopProcessesCacheKey,
		Payload:  string(payload),
		CachedAt: float64(deps.nowOrDefault().Unix()),
	}
	if err := deps.Store.PutSitrepCache(ctx, entry); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	return Outcome{State: model.StateOK}
}
