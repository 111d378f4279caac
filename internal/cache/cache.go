// Package cache implements the thin fresh/stale/miss protocol over
// the store's keyed cache tables, with single-flight coalescing of
// concurrent refreshes for the same key.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// TTLCache is a generic keyed cache backed by one store table. V is
// the row type (e.g. model.DNSCacheEntry); get/put are thin wrappers
// around the corresponding *store.Store methods so this package has
// no direct dependency on the concrete store type, only on the
// narrow read/write contract it needs.
type TTLCache[V any] struct {
	ttl   time.Duration
	group singleflight.Group

	get func(ctx context.Context, key string) (V, float64, error)
	put func(ctx context.Context, value V, resolvedAt float64) error
}

// New builds a TTLCache. get must return the row's resolved-at
// timestamp alongside the value (or sql.ErrNoRows on a miss). put
// writes the value back with a freshly stamped resolved-at.
func New[V any](ttl time.Duration, get func(ctx context.Context, key string) (V, float64, error), put func(ctx context.Context, value V, resolvedAt float64) error) *TTLCache[V] {
	return &TTLCache[V]{ttl: ttl, get: get, put: put}
}

// Get classifies the cached value for key as fresh, stale (with age),
// or miss.
func (c *TTLCache[V]) Get(ctx context.Context, key string, now time.Time) (value V, result CacheResult, age time.Duration, err error) {
	v, resolvedAt, err := c.get(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return value, Miss, 0, nil
		}
		return value, Miss, 0, err
	}
	if resolvedAt <= 0 {
		return v, Miss, 0, nil
	}
	age = now.Sub(time.Unix(int64(resolvedAt), 0))
	if age > c.ttl {
		return v, Stale, age, nil
	}
	return v, Fresh, age, nil
}

// Put writes value back with resolvedAt stamped to now.
func (c *TTLCache[V]) Put(ctx context.Context, key string, value V, now time.Time) error {
	return c.put(ctx, value, float64(now.Unix()))
}

// Refresh coalesces concurrent refreshes for the same key: the second
// and later callers within the same in-flight window join the first
// call's result instead of invoking fn again.
func (c *TTLCache[V]) Refresh(key string, fn func() (V, error)) (V, error) {
	v, err, _ := c.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// CacheResult mirrors model.CacheResult locally: the three results
// Get classifies a cached value into.
type CacheResult int

const (
	Miss CacheResult = iota
	Fresh
	Stale
)

func (r CacheResult) String() string {
	switch r {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "miss"
	}
}
