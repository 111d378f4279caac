package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "metrics.db")
	s, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenStampsSchemaVersion(t *testing.T) {
	s := newTestStore(t)
	v, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, CurrentSchemaVersion, v)
}

func TestRecentServerMetricsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := float64(time.Now().Unix())

	const n = 5
	for i := 0; i < n; i++ {
		err := s.WriteServerMetrics(ctx, model.ServerMetrics{
			Timestamp:  base + float64(i),
			CPUPercent: float64(i),
		})
		require.NoError(t, err)
	}

	rows, err := s.RecentServerMetrics(ctx, 1, n)
	require.NoError(t, err)
	require.Len(t, rows, n)
	// newest-first
	require.Equal(t, base+float64(n-1), rows[0].Timestamp)
	require.Equal(t, base, rows[n-1].Timestamp)
}

func TestPruneRemovesOldRowsAndIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := float64(time.Now().Unix())

	require.NoError(t, s.WriteServerMetrics(ctx, model.ServerMetrics{Timestamp: now - Retention.Seconds() - 10}))
	require.NoError(t, s.WriteServerMetrics(ctx, model.ServerMetrics{Timestamp: now}))

	res, err := s.Prune(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, res.TimeSeriesRowsDeleted)

	rows, err := s.RecentServerMetrics(ctx, 24*365, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	res2, err := s.Prune(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 0, res2.TimeSeriesRowsDeleted)
}

func TestWriteAgentMetricsAndReadBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := float64(time.Now().Unix())

	err := s.WriteAgentMetrics(ctx, []model.AgentMetrics{
		{Timestamp: now, AgentName: "main", Model: "x", TokensUsed: 126000, Sessions: 3, IsDefault: true},
		{Timestamp: now, AgentName: "rentalops", Model: "x", TokensUsed: 65000, Sessions: 4},
	})
	require.NoError(t, err)

	names, err := s.AllAgentNames(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"main", "rentalops"}, names)
}

func TestCacheTableUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.PutDNSCache(ctx, model.DNSCacheEntry{IP: "1.2.3.4", Hostname: "a.example.com", ResolvedAt: 100})
	require.NoError(t, err)

	e, err := s.GetDNSCache(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.Equal(t, "a.example.com", e.Hostname)

	err = s.PutDNSCache(ctx, model.DNSCacheEntry{IP: "1.2.3.4", Hostname: "b.example.com", ResolvedAt: 200})
	require.NoError(t, err)

	e2, err := s.GetDNSCache(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.Equal(t, "b.example.com", e2.Hostname)
}

func TestGetDNSCacheMissReturnsErrNoRows(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetDNSCache(context.Background(), "9.9.9.9")
	require.Error(t, err)
	require.True(t, IsNotFound(err))
}
