package collector

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/cache"
	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
)

// TopPeersTracked bounds how many top-count peers are persisted for
// the Network panel's top-peers table.
const TopPeersTracked = 5

// TopPeersCacheKey is the sitrep_cache key the top-N peer snapshot is
// persisted under. There is no per-peer time-series table, so the
// generic keyed-snapshot mechanism (also used by top_processes and
// platform status) carries it to the dashboard process.
const TopPeersCacheKey = "top_peers"

// TopPeer is one row of the persisted top-peers-by-count snapshot.
type TopPeer struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname,omitempty"`
	Count    int    `json:"count"`
}

// Network runs `ss -tnp`, writes one network_metrics row, and
// persists a top-N-peers snapshot annotated with whatever
// reverse-DNS hostnames the cache already holds, fresh or stale. It never
// performs a DNS lookup itself -- that is the glacial-tier DNS
// collector's job -- it only reads whatever the cache already has.
type Network struct {
	RunTimeout time.Duration
}

// NewNetwork builds the medium-tier network collector.
func NewNetwork() *Network {
	return &Network{RunTimeout: 10 * time.Second}
}

func (c *Network) Name() string { return "network" }
func (c *Network) Tier() Tier   { return TierMedium }

func (c *Network) Collect(ctx context.Context, deps Deps) Outcome {
	res, err := deps.Runner.Run(ctx, c.RunTimeout, "ss", "-tnp")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	if res.Outcome != model.RunOK {
		return Outcome{State: model.StateDegraded, Detail: "ss -tnp unavailable: " + res.Outcome.String()}
	}

	counts := parser.ParseSSConnections(res.Stdout)
	sort.Slice(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })

	active := 0
	for _, cc := range counts {
		active += cc.Count
	}

	now := deps.nowOrDefault()
	top := counts
	if len(top) > TopPeersTracked {
		top = top[:TopPeersTracked]
	}
	peers := make([]TopPeer, 0, len(top))
	for _, cc := range top {
		peer := TopPeer{IP: cc.PeerIP, Count: cc.Count}
		if deps.DNSCache != nil {
			if entry, result, _, err := deps.DNSCache.Get(ctx, cc.PeerIP, now); err == nil && result != cache.Miss {
				peer.Hostname = entry.Hostname
			}
		}
		peers = append(peers, peer)
	}
	if payload, err := json.Marshal(peers); err == nil {
		_ = deps.Store.PutSitrepCache(ctx, model.SitrepCacheEntry{
			Key:      TopPeersCacheKey,
			Payload:  string(payload),
			CachedAt: float64(now.Unix()),
		})
		// A failed snapshot write degrades the top-peers table only;
		// the network_metrics row below still carries the headline
		// counts, so it is not treated as a collector-wide failure.
	}

	m := model.NetworkMetrics{
		Timestamp:         float64(now.Unix()),
		ActiveConnections: active,
		UniqueIPs:         len(counts),
	}
	if err := deps.Store.WriteNetworkMetrics(ctx, m); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	return Outcome{State: model.StateOK}
}
