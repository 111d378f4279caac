package collector

import (
	"context"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
)

// CronJobs runs `openclaw cron list` and writes one cron_metrics row
// per job for the current tick.
type CronJobs struct {
	RunTimeout time.Duration
}

// NewCronJobs builds the medium-tier cron job collector.
func NewCronJobs() *CronJobs {
	return &CronJobs{RunTimeout: 10 * time.Second}
}

func (c *CronJobs) Name() string { return "cron" }
func (c *CronJobs) Tier() Tier   { return TierMedium }

func (c *CronJobs) Collect(ctx context.Context, deps Deps) Outcome {
	res, err := deps.Runner.Run(ctx, c.RunTimeout, "openclaw", "cron", "list")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	if res.Outcome != model.RunOK {
		return Outcome{State: model.StateDegraded, Detail: "openclaw cron list unavailable: " + res.Outcome.String()}
	}

	records := parser.ParseCronList(res.Stdout)
	if len(records) == 0 {
		return Outcome{State: model.StateDegraded, Detail: "no cron jobs parsed from output"}
	}

	ts := float64(deps.nowOrDefault().Unix())
	rows := make([]model.CronMetrics, 0, len(records))
	for _, r := range records {
		rows = append(rows, model.CronMetrics{
			Timestamp:         ts,
			JobName:           r.JobName,
			Status:            r.Status,
			LastRun:           r.LastRun,
			NextRun:           r.NextRun,
			ConsecutiveErrors: r.ConsecutiveErrors,
		})
	}
	if err := deps.Store.WriteCronMetrics(ctx, rows); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	return Outcome{State: model.StateOK}
}
