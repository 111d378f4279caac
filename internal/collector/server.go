package collector

import (
	"context"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
)

// ServerHealth runs free/df/uptime and writes one server_metrics row.
// A missing binary in any of the three degrades the whole tick: the
// row is only written when all three parse successfully, since a
// partial server_metrics row would misrepresent the other columns.
type ServerHealth struct {
	RunTimeout time.Duration
}

// NewServerHealth builds the fast-tier server health collector.
func NewServerHealth() *ServerHealth {
	return &ServerHealth{RunTimeout: 5 * time.Second}
}

func (c *ServerHealth) Name() string { return "server_health" }
func (c *ServerHealth) Tier() Tier   { return TierFast }

func (c *ServerHealth) Collect(ctx context.Context, deps Deps) Outcome {
	freeRes, err := deps.Runner.Run(ctx, c.RunTimeout, "free", "-h")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	dfRes, err := deps.Runner.Run(ctx, c.RunTimeout, "df", "-h")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	upRes, err := deps.Runner.Run(ctx, c.RunTimeout, "uptime")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}

	if degraded := worstOutcome(freeRes.Outcome, dfRes.Outcome, upRes.Outcome); degraded {
		return Outcome{State: model.StateDegraded, Detail: "one or more of free/df/uptime unavailable"}
	}

	free := parser.ParseFree(freeRes.Stdout)
	df := parser.ParseDf(dfRes.Stdout)
	load := parser.ParseUptime(upRes.Stdout)
	if !free.OK || !df.OK || !load.OK {
		return Outcome{State: model.StateDegraded, Detail: "free/df/uptime output did not match expected shape"}
	}

	// CPU percent is not directly reported by any of free/df/uptime;
	// it is approximated from the 1-minute load average relative to
	// the number of schedulable CPUs, clamped to [0, 100].
	cpuPercent := approximateCPUPercent(load.Load1)

	m := model.ServerMetrics{
		Timestamp:   float64(deps.nowOrDefault().Unix()),
		CPUPercent:  cpuPercent,
		MemUsedMB:   free.UsedMB,
		MemTotalMB:  free.TotalMB,
		DiskUsedGB:  df.UsedGB,
		DiskTotalGB: df.TotalGB,
		Load1m:      load.Load1,
		Load5m:      load.Load5,
		Load15m:     load.Load15,
	}
	if err := deps.Store.WriteServerMetrics(ctx, m); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	return Outcome{State: model.StateOK}
}

func worstOutcome(outcomes ...model.RunOutcome) bool {
	for _, o := range outcomes {
		if o != model.RunOK {
			return true
		}
	}
	return false
}

func approximateCPUPercent(load1 float64) float64 {
	cpus := float64(numCPU())
	if cpus <= 0 {
		cpus = 1
	}
	pct := load1 / cpus * 100
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
