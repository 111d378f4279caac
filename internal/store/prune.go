package store

import (
	"context"
	"database/sql"
)

// timeSeriesTables lists every append-only table subject to the 30-day
// retention rule.
var timeSeriesTables = []string{
	"server_metrics",
	"agent_metrics",
	"cron_metrics",
	"security_metrics",
	"network_metrics",
	"port_scans",
}

// cacheTables maps each keyed cache table to its TTL column and the
// TTL, in seconds, after which a row is eligible for eviction.
var cacheTables = map[string]struct {
	tsColumn string
	ttlSecs  float64
}{
	"dns_cache":      {"resolved_at", 24 * 60 * 60},
	"geo_cache":      {"resolved_at", 7 * 24 * 60 * 60},
	"attacker_scans": {"scanned_at", 6 * 60 * 60},
	// sitrep_cache has per-key TTLs handled by internal/cache at read
	// time; the pruner still reaps anything older than the longest
	// configured TTL (1h for the update-check key) to bound growth.
	"sitrep_cache": {"cached_at", 60 * 60},
}

// PruneResult reports how many rows were removed, for the `db prune`
// CLI verb and structured logging.
type PruneResult struct {
	TimeSeriesRowsDeleted int64
	CacheRowsDeleted      int64
}

// Prune deletes every time-series row older than the retention window
// and every cache row past its TTL. It is idempotent: running it twice
// back-to-back with no new writes in between deletes nothing on the
// second call.
func (s *Store) Prune(ctx context.Context, now float64) (PruneResult, error) {
	var result PruneResult
	cutoff := now - Retention.Seconds()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range timeSeriesTables {
			res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
			if err != nil {
				return err
			}
			n, _ := res.RowsAffected()
			result.TimeSeriesRowsDeleted += n
		}
		for table, ttl := range cacheTables {
			res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE `+ttl.tsColumn+` < ?`, now-ttl.ttlSecs)
			if err != nil {
				return err
			}
			n, _ := res.RowsAffected()
			result.CacheRowsDeleted += n
		}
		return nil
	})
	return result, err
}

// Stats is a lightweight row-count summary used by `db stats`.
type Stats struct {
	ServerMetricsRows int64
	AgentMetricsRows  int64
	CronMetricsRows   int64
	SchemaVersion     int
	SizeBytes         int64
}

// Stats queries row counts across the principal tables.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM server_metrics`).Scan(&st.ServerMetricsRows); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agent_metrics`).Scan(&st.AgentMetricsRows); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cron_metrics`).Scan(&st.CronMetricsRows); err != nil {
		return st, err
	}
	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return st, err
	}
	st.SchemaVersion = version
	return st, nil
}
