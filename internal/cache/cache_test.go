package cache

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheMissWhenAbsent(t *testing.T) {
	c := New[string](time.Hour,
		func(ctx context.Context, key string) (string, float64, error) {
			return "", 0, sql.ErrNoRows
		},
		func(ctx context.Context, value string, resolvedAt float64) error { return nil })

	_, result, _, err := c.Get(context.Background(), "k", time.Now())
	require.NoError(t, err)
	assert.Equal(t, Miss, result)
}

func TestTTLCacheFreshVsStale(t *testing.T) {
	now := time.Now()
	resolvedAt := float64(now.Add(-30 * time.Minute).Unix())

	c := New[string](time.Hour,
		func(ctx context.Context, key string) (string, float64, error) {
			return "payload", resolvedAt, nil
		},
		func(ctx context.Context, value string, resolvedAt float64) error { return nil })

	_, result, age, err := c.Get(context.Background(), "k", now)
	require.NoError(t, err)
	assert.Equal(t, Fresh, result)
	assert.InDelta(t, 30*time.Minute, age, float64(time.Second))

	cStale := New[string](10*time.Minute,
		func(ctx context.Context, key string) (string, float64, error) {
			return "payload", resolvedAt, nil
		},
		func(ctx context.Context, value string, resolvedAt float64) error { return nil })

	_, result2, _, err := cStale.Get(context.Background(), "k", now)
	require.NoError(t, err)
	assert.Equal(t, Stale, result2)
}

func TestRefreshCoalescesConcurrentCallers(t *testing.T) {
	var calls int32
	c := New[string](time.Hour,
		func(ctx context.Context, key string) (string, float64, error) { return "", 0, sql.ErrNoRows },
		func(ctx context.Context, value string, resolvedAt float64) error { return nil })

	release := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]string, 5)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Refresh("ip", func() (string, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return "resolved", nil
			})
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "resolved", r)
	}
}
