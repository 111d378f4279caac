package scheduler

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/spacetrucker2196/galacticcic/internal/cache"
	"github.com/spacetrucker2196/galacticcic/internal/collector"
	"github.com/spacetrucker2196/galacticcic/internal/config"
	"github.com/spacetrucker2196/galacticcic/internal/runner"
	"github.com/spacetrucker2196/galacticcic/internal/state"
	"github.com/spacetrucker2196/galacticcic/internal/store"
)

// BuildDeps assembles the collector.Deps shared by every tier, wiring
// the process configuration's HTTP timeouts, geo API URLs, and rate
// limit into the concrete caches built over s.
func BuildDeps(cfg config.ProcessConfig, s *store.Store) collector.Deps {
	return collector.Deps{
		Runner:     runner.NewExecRunner(),
		Store:      s,
		Now:        time.Now,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		GeoLimiter: rate.NewLimiter(rate.Limit(cfg.GeoRateLimitHz), 1),
		NmapActive: state.NewNmapActive(),

		DNSCache:      cache.NewDNSCache(s),
		GeoCache:      cache.NewGeoCache(s),
		AttackerCache: cache.NewAttackerScanCache(s),
		SitrepCache:   cache.NewSitrepCache(s, cache.SitrepChannelsTTL),
	}
}

// DefaultCollectors returns every collector the daemon runs, grouped
// into tiers by each collector's own Tier() method.
func DefaultCollectors(cfg config.ProcessConfig) []collector.Collector {
	nmap := collector.NewAttackerNmap()
	if cfg.NmapTimeout > 0 {
		nmap.RunTimeout = cfg.NmapTimeout
	}
	return []collector.Collector{
		collector.NewServerHealth(),
		collector.NewTopProcesses(),
		collector.NewAgents(),
		collector.NewCronJobs(),
		collector.NewActivityLog(),
		collector.NewPlatformStatus(),
		collector.NewSecurity(),
		collector.NewNetwork(),
		collector.NewDNSResolution(),
		collector.NewGeolocation(cfg.GeoPrimaryURL, cfg.GeoFallbackURL),
		nmap,
		collector.NewSitrep(cfg.UpdateCheckURL),
	}
}
