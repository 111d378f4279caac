package collector

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
)

// PlatformStatusCacheKey is the sitrep_cache key the combined
// `openclaw status` / `openclaw gateway status` channel list is
// persisted under; it shares the SITREP panel's channel-health TTL
// since both describe the same kind of channel-up-or-down fact.
const PlatformStatusCacheKey = "channels"

// PlatformStatus runs `openclaw status` and `openclaw gateway status`
// and persists the combined channel list as a JSON snapshot.
type PlatformStatus struct {
	RunTimeout time.Duration
}

// NewPlatformStatus builds the slow-tier platform/gateway status collector.
func NewPlatformStatus() *PlatformStatus {
	return &PlatformStatus{RunTimeout: 10 * time.Second}
}

func (c *PlatformStatus) Name() string { return "platform_status" }
func (c *PlatformStatus) Tier() Tier   { return TierSlow }

func (c *PlatformStatus) Collect(ctx context.Context, deps Deps) Outcome {
	statusRes, err := deps.Runner.Run(ctx, c.RunTimeout, "openclaw", "status")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	gatewayRes, err := deps.Runner.Run(ctx, c.RunTimeout, "openclaw", "gateway", "status")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	if statusRes.Outcome != model.RunOK || gatewayRes.Outcome != model.RunOK {
		return Outcome{State: model.StateDegraded, Detail: "openclaw status/gateway status unavailable"}
	}

	channels := append(parser.ParsePlatformStatus(statusRes.Stdout), parser.ParsePlatformStatus(gatewayRes.Stdout)...)
	if len(channels) == 0 {
		return Outcome{State: model.StateDegraded, Detail: "no channels parsed from status output"}
	}

	payload, err := json.Marshal(channels)
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	entry := model.SitrepCacheEntry{
		Key:      PlatformStatusCacheKey,
		Payload:  string(payload),
		CachedAt: float64(deps.nowOrDefault().Unix()),
	}
	if err := deps.Store.PutSitrepCache(ctx, entry); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	return Outcome{State: model.StateOK}
}
