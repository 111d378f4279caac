package cache

import (
	"context"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// dnsStore is the narrow slice of *store.Store that the DNS cache
// needs; internal/collector wires the real *store.Store in, keeping
// this package free of a direct store import cycle risk.
type dnsStore interface {
	GetDNSCache(ctx context.Context, ip string) (model.DNSCacheEntry, error)
	PutDNSCache(ctx context.Context, e model.DNSCacheEntry) error
}

// NewDNSCache builds the 24h-TTL reverse-DNS cache over s.
func NewDNSCache(s dnsStore) *TTLCache[model.DNSCacheEntry] {
	return New(dnsTTL,
		func(ctx context.Context, ip string) (model.DNSCacheEntry, float64, error) {
			e, err := s.GetDNSCache(ctx, ip)
			return e, e.ResolvedAt, err
		},
		func(ctx context.Context, e model.DNSCacheEntry, resolvedAt float64) error {
			e.ResolvedAt = resolvedAt
			return s.PutDNSCache(ctx, e)
		})
}

type geoStore interface {
	GetGeoCache(ctx context.Context, ip string) (model.GeoCacheEntry, error)
	PutGeoCache(ctx context.Context, e model.GeoCacheEntry) error
}

// NewGeoCache builds the 7-day-TTL geolocation cache over s.
func NewGeoCache(s geoStore) *TTLCache[model.GeoCacheEntry] {
	return New(geoTTL,
		func(ctx context.Context, ip string) (model.GeoCacheEntry, float64, error) {
			e, err := s.GetGeoCache(ctx, ip)
			return e, e.ResolvedAt, err
		},
		func(ctx context.Context, e model.GeoCacheEntry, resolvedAt float64) error {
			e.ResolvedAt = resolvedAt
			return s.PutGeoCache(ctx, e)
		})
}

type attackerStore interface {
	GetAttackerScan(ctx context.Context, ip string) (model.AttackerScan, error)
	PutAttackerScan(ctx context.Context, a model.AttackerScan) error
}

// NewAttackerScanCache builds the 6h-TTL nmap-scan cache over s.
func NewAttackerScanCache(s attackerStore) *TTLCache[model.AttackerScan] {
	return New(attackerTTL,
		func(ctx context.Context, ip string) (model.AttackerScan, float64, error) {
			a, err := s.GetAttackerScan(ctx, ip)
			return a, a.ScannedAt, err
		},
		func(ctx context.Context, a model.AttackerScan, scannedAt float64) error {
			a.ScannedAt = scannedAt
			return s.PutAttackerScan(ctx, a)
		})
}

type sitrepStore interface {
	GetSitrepCache(ctx context.Context, key string) (model.SitrepCacheEntry, error)
	PutSitrepCache(ctx context.Context, e model.SitrepCacheEntry) error
}

// NewSitrepCache builds a sitrep_cache-backed TTLCache for one SITREP
// sub-key (channels, update check, or action items); each key has its
// own TTL per spec, so the scheduler constructs one instance per key.
func NewSitrepCache(s sitrepStore, ttl time.Duration) *TTLCache[model.SitrepCacheEntry] {
	return New(ttl,
		func(ctx context.Context, key string) (model.SitrepCacheEntry, float64, error) {
			e, err := s.GetSitrepCache(ctx, key)
			return e, e.CachedAt, err
		},
		func(ctx context.Context, e model.SitrepCacheEntry, cachedAt float64) error {
			e.CachedAt = cachedAt
			return s.PutSitrepCache(ctx, e)
		})
}
