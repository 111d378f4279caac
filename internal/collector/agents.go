package collector

import (
	"context"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
)

// Agents runs `openclaw agents list` and writes one agent_metrics row
// per agent for the current tick.
type Agents struct {
	RunTimeout time.Duration
}

// NewAgents builds the slow-tier agent fleet collector.
func NewAgents() *Agents {
	return &Agents{RunTimeout: 10 * time.Second}
}

func (c *Agents) Name() string { return "agents" }
func (c *Agents) Tier() Tier   { return TierSlow }

func (c *Agents) Collect(ctx context.Context, deps Deps) Outcome {
	res, err := deps.Runner.Run(ctx, c.RunTimeout, "openclaw", "agents", "list")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	if res.Outcome != model.RunOK {
		return Outcome{State: model.StateDegraded, Detail: "openclaw agents list unavailable: " + res.Outcome.String()}
	}

	records := parser.ParseAgentList(res.Stdout)
	if len(records) == 0 {
		return Outcome{State: model.StateDegraded, Detail: "no agents parsed from output"}
	}

	ts := float64(deps.nowOrDefault().Unix())
	rows := make([]model.AgentMetrics, 0, len(records))
	for _, r := range records {
		rows = append(rows, model.AgentMetrics{
			Timestamp:    ts,
			AgentName:    r.Name,
			Model:        r.Model,
			TokensUsed:   r.Tokens,
			Sessions:     r.Sessions,
			StorageBytes: r.Storage,
			IsDefault:    r.IsDefault,
		})
	}
	if err := deps.Store.WriteAgentMetrics(ctx, rows); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	return Outcome{State: model.StateOK}
}
