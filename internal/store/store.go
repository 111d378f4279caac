// Package store implements the embedded metrics store: schema
// bootstrap and migration, time-series writes in short transactions,
// retention pruning, and the cache tables consumed by internal/cache.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// CurrentSchemaVersion is stamped into the schema_version control
// table once migrations succeed. It is informational for the CLI's
// `db stats` verb; goose owns the authoritative migration ledger.
const CurrentSchemaVersion = 1

// Retention is how long a time-series row is kept before it becomes
// eligible for pruning.
const Retention = 30 * 24 * time.Hour

// Store wraps a WAL-mode sqlite database holding all GalacticCIC
// tables.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if absent) the database at path, enables WAL
// journaling, and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// The store is shared between one writer (the daemon) and any
	// number of reader dashboard processes; a single *sql.DB handle
	// per process with a modest connection cap is sufficient since
	// WAL mode already serializes the one writer.
	db.SetMaxOpenConns(4)

	s := &Store{db: db, path: path}

	if err := NewMigrator(db).Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	if err := s.stampSchemaVersion(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path of the open database file.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying handle for the query layer, which issues
// its own read-only SQL.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) stampSchemaVersion(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("read schema_version: %w", err)
	}
	if count == 0 {
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_version(version) VALUES (?)`, CurrentSchemaVersion); err != nil {
			return fmt.Errorf("stamp schema_version: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the currently stamped schema version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&v)
	return v, err
}

// WriteServerMetrics inserts one server_metrics row in its own short
// transaction.
func (s *Store) WriteServerMetrics(ctx context.Context, m model.ServerMetrics) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO server_metrics
			(timestamp, cpu_percent, mem_used_mb, mem_total_mb, disk_used_gb, disk_total_gb, load_1m, load_5m, load_15m)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Timestamp, m.CPUPercent, m.MemUsedMB, m.MemTotalMB, m.DiskUsedGB, m.DiskTotalGB, m.Load1m, m.Load5m, m.Load15m)
	return err
}

// WriteAgentMetrics inserts one row per agent for a single tick inside
// one transaction, keyed on the shared tick timestamp.
func (s *Store) WriteAgentMetrics(ctx context.Context, rows []model.AgentMetrics) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO agent_metrics
				(timestamp, agent_name, model, tokens_used, sessions, storage_bytes, is_default)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, r.Timestamp, r.AgentName, r.Model, r.TokensUsed, r.Sessions, r.StorageBytes, boolToInt(r.IsDefault)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteCronMetrics inserts one row per job for a single tick.
func (s *Store) WriteCronMetrics(ctx context.Context, rows []model.CronMetrics) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO cron_metrics
				(timestamp, job_name, status, last_run, next_run, consecutive_errors)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, r.Timestamp, r.JobName, r.Status.String(), r.LastRun, r.NextRun, r.ConsecutiveErrors); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSecurityMetrics inserts one security_metrics row.
func (s *Store) WriteSecurityMetrics(ctx context.Context, m model.SecurityMetrics) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO security_metrics
			(timestamp, ssh_intrusions_24h, ports_open, ufw_active, fail2ban_active, root_login_enabled)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Timestamp, m.SSHIntrusions24h, m.PortsOpen, boolToInt(m.UFWActive), boolToInt(m.Fail2banActive), boolToInt(m.RootLoginEnabled))
	return err
}

// WriteNetworkMetrics inserts one network_metrics row.
func (s *Store) WriteNetworkMetrics(ctx context.Context, m model.NetworkMetrics) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO network_metrics (timestamp, active_connections, unique_ips)
		VALUES (?, ?, ?)`,
		m.Timestamp, m.ActiveConnections, m.UniqueIPs)
	return err
}

// WritePortScans inserts the full set of open ports for one tick in a
// single transaction, so ports_open (tracked on SecurityMetrics)
// always equals the number of port_scans rows sharing that timestamp.
func (s *Store) WritePortScans(ctx context.Context, rows []model.PortScan) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO port_scans (timestamp, port, service, state) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, r.Timestamp, r.Port, r.Service, r.State); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DefaultPath returns the conventional metrics.db location under the
// user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".galactic_cic", "metrics.db"), nil
}
