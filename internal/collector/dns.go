package collector

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/cache"
	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// DNSResolution performs reverse lookups for whatever peer IPs the
// network collector's top-peers snapshot currently names, refreshing
// any dns_cache entry that is stale or missing. It holds no list of
// its own: the Network panel is the only consumer of hostnames, so
// its own top-N snapshot is the natural source of which IPs matter.
type DNSResolution struct {
	LookupAddr func(ctx context.Context, ip string) ([]string, error)
}

// NewDNSResolution builds the glacial-tier reverse-DNS collector.
func NewDNSResolution() *DNSResolution {
	return &DNSResolution{
		LookupAddr: func(ctx context.Context, ip string) ([]string, error) {
			var resolver net.Resolver
			return resolver.LookupAddr(ctx, ip)
		},
	}
}

func (c *DNSResolution) Name() string { return "dns_resolution" }
func (c *DNSResolution) Tier() Tier   { return TierGlacial }

func (c *DNSResolution) Collect(ctx context.Context, deps Deps) Outcome {
	if deps.DNSCache == nil {
		return Outcome{State: model.StateDegraded, Detail: "no DNS cache wired"}
	}

	entry, err := deps.Store.GetSitrepCache(ctx, TopPeersCacheKey)
	if err != nil {
		// No top-peers snapshot yet (daemon just started): nothing to
		// resolve this tick, not an error.
		return Outcome{State: model.StateOK}
	}
	var peers []TopPeer
	if err := json.Unmarshal([]byte(entry.Payload), &peers); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}

	now := deps.nowOrDefault()
	for _, p := range peers {
		_, result, _, err := deps.DNSCache.Get(ctx, p.IP, now)
		if err != nil || result == cache.Fresh {
			continue
		}
		ip := p.IP
		_, err = deps.DNSCache.Refresh(ip, func() (model.DNSCacheEntry, error) {
			names, err := c.LookupAddr(ctx, ip)
			hostname := ""
			if err == nil && len(names) > 0 {
				hostname = strings.TrimSuffix(names[0], ".")
			}
			entry := model.DNSCacheEntry{IP: ip, Hostname: hostname}
			if err := deps.DNSCache.Put(ctx, ip, entry, now); err != nil {
				return entry, err
			}
			return entry, nil
		})
		if err != nil {
			return Outcome{State: model.StateFailed, Detail: err.Error()}
		}
	}
	return Outcome{State: model.StateOK}
}
