// Package collector implements GalacticCIC's source-specific
// collectors. Each collector combines the Command Runner (or an HTTP
// client), a Parser, and optionally a Cache, then writes normalized
// rows to the Store. A collector never lets an external failure
// propagate past itself -- missing binaries, timeouts, and parse
// failures all degrade to a CollectorState rather than an error that
// would crash the scheduler.
package collector

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/spacetrucker2196/galacticcic/internal/cache"
	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/runner"
	"github.com/spacetrucker2196/galacticcic/internal/state"
	"github.com/spacetrucker2196/galacticcic/internal/store"
)

// Tier identifies which scheduler loop owns a collector.
type Tier int

const (
	TierFast Tier = iota
	TierMedium
	TierSlow
	TierGlacial
)

func (t Tier) String() string {
	switch t {
	case TierFast:
		return "fast"
	case TierMedium:
		return "medium"
	case TierSlow:
		return "slow"
	case TierGlacial:
		return "glacial"
	default:
		return "unknown"
	}
}

// Outcome is the result of one Collector invocation, reported back to
// the scheduler for logging and degraded-state bookkeeping.
type Outcome struct {
	State   model.CollectorState
	Detail  string // short excerpt on StateDegraded/StateFailed, empty otherwise
}

// Collector is a value implementing one capability: a name, a tier,
// and a run function. This replaces dynamic dispatch / attribute
// lookup with an explicit tagged capability, per spec.md §9.
type Collector interface {
	Name() string
	Tier() Tier
	Collect(ctx context.Context, deps Deps) Outcome
}

// Deps bundles everything a collector may need. Not every collector
// uses every field; HTTPClient and GeoLimiter are only relevant to
// the handful of collectors that call out over the network, and the
// four cache fields only to the collectors backed by a keyed cache
// table (DNS, geo, attacker scans, SITREP sub-keys).
type Deps struct {
	Runner     runner.Runner
	Store      *store.Store
	Now        func() time.Time
	HTTPClient *http.Client
	GeoLimiter *rate.Limiter
	NmapActive *state.NmapActive

	DNSCache      *cache.TTLCache[model.DNSCacheEntry]
	GeoCache      *cache.TTLCache[model.GeoCacheEntry]
	AttackerCache *cache.TTLCache[model.AttackerScan]
	SitrepCache   *cache.TTLCache[model.SitrepCacheEntry]
}

// nowOrDefault returns deps.Now() if set, else time.Now -- tests wire
// a fixed clock through Deps.Now to make collector output
// deterministic.
func (d Deps) nowOrDefault() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
