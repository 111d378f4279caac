package collector

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/cache"
	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
)

// AttackerNmap runs a top-ports nmap scan against the top-3
// failed-login IPs the security collector names, and caches the
// result for 6h. It marks deps.NmapActive for the duration of each
// scan so the renderer can annotate the Security panel title while a
// scan is in flight.
type AttackerNmap struct {
	RunTimeout time.Duration
}

// NewAttackerNmap builds the glacial-tier attacker-nmap collector.
func NewAttackerNmap() *AttackerNmap {
	return &AttackerNmap{RunTimeout: 10 * time.Second}
}

func (c *AttackerNmap) Name() string { return "attacker_nmap" }
func (c *AttackerNmap) Tier() Tier   { return TierGlacial }

func (c *AttackerNmap) Collect(ctx context.Context, deps Deps) Outcome {
	if deps.AttackerCache == nil {
		return Outcome{State: model.StateDegraded, Detail: "attacker scan cache not wired"}
	}

	entry, err := deps.Store.GetSitrepCache(ctx, TopAttackersCacheKey)
	if err != nil {
		return Outcome{State: model.StateOK}
	}
	var candidates []AttackerCandidate
	if err := json.Unmarshal([]byte(entry.Payload), &candidates); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}

	now := deps.nowOrDefault()
	for _, a := range candidates {
		_, result, _, err := deps.AttackerCache.Get(ctx, a.IP, now)
		if err != nil || result == cache.Fresh {
			continue
		}

		ip := a.IP
		_, _ = deps.AttackerCache.Refresh(ip, func() (model.AttackerScan, error) {
			return c.scanOne(ctx, deps, ip, now)
		})
	}
	return Outcome{State: model.StateOK}
}

func (c *AttackerNmap) scanOne(ctx context.Context, deps Deps, ip string, now time.Time) (model.AttackerScan, error) {
	if deps.NmapActive != nil {
		done := deps.NmapActive.Begin()
		defer done()
	}

	res, err := deps.Runner.Run(ctx, c.RunTimeout, "nmap", "-sT", "--top-ports", "20", ip)
	if err != nil {
		return model.AttackerScan{}, err
	}
	if res.Outcome != model.RunOK {
		return model.AttackerScan{}, nil // degraded scan: leave the previous cached value in place
	}

	scan := parser.ParseNmap(ip, res.Stdout)
	ports := make([]string, 0, len(scan.Ports))
	for _, p := range scan.Ports {
		ports = append(ports, strconv.Itoa(p.Port))
	}
	entry := model.AttackerScan{IP: ip, OpenPorts: strings.Join(ports, ","), OSGuess: scan.OSGuess}
	return entry, deps.AttackerCache.Put(ctx, ip, entry, now)
}
