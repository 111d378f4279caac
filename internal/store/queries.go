package store

import (
	"context"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// RecentServerMetrics returns up to limit rows newest-first within the
// trailing `hours`.
func (s *Store) RecentServerMetrics(ctx context.Context, hours float64, limit int) ([]model.ServerMetrics, error) {
	cutoff := float64(time.Now().Unix()) - hours*3600
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, cpu_percent, mem_used_mb, mem_total_mb, disk_used_gb, disk_total_gb, load_1m, load_5m, load_15m
		FROM server_metrics
		WHERE timestamp >= ?
		ORDER BY timestamp DESC
		LIMIT ?`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ServerMetrics
	for rows.Next() {
		var m model.ServerMetrics
		if err := rows.Scan(&m.Timestamp, &m.CPUPercent, &m.MemUsedMB, &m.MemTotalMB, &m.DiskUsedGB, &m.DiskTotalGB, &m.Load1m, &m.Load5m, &m.Load15m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AgentTokenSamples returns (timestamp, tokens_used) pairs for one
// agent, oldest-first, within the trailing window.
func (s *Store) AgentTokenSamples(ctx context.Context, agent string, window time.Duration) ([][2]float64, error) {
	cutoff := float64(time.Now().Unix()) - window.Seconds()
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, tokens_used FROM agent_metrics
		WHERE agent_name = ? AND timestamp >= ?
		ORDER BY timestamp ASC`, agent, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][2]float64
	for rows.Next() {
		var ts, tokens float64
		if err := rows.Scan(&ts, &tokens); err != nil {
			return nil, err
		}
		out = append(out, [2]float64{ts, tokens})
	}
	return out, rows.Err()
}

// AllAgentNames returns the distinct set of agent names that have ever
// reported a metric.
func (s *Store) AllAgentNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT agent_name FROM agent_metrics`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// LatestAgentMetrics returns the most recently written agent_metrics
// row for each agent name, newest tick only, carrying the columns
// (sessions, is_default) that AgentTokenSamples/AllAgentNames don't.
func (s *Store) LatestAgentMetrics(ctx context.Context) ([]model.AgentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT am.agent_name, am.model, am.sessions, am.tokens_used, am.storage_bytes, am.is_default
		FROM agent_metrics am
		INNER JOIN (
			SELECT agent_name, MAX(timestamp) AS ts FROM agent_metrics GROUP BY agent_name
		) latest ON latest.agent_name = am.agent_name AND latest.ts = am.timestamp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AgentRecord
	for rows.Next() {
		var r model.AgentRecord
		var isDefault int
		if err := rows.Scan(&r.Name, &r.Model, &r.Sessions, &r.Tokens, &r.Storage, &isDefault); err != nil {
			return nil, err
		}
		r.IsDefault = isDefault != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// MetricSeries returns the plain numeric series for one of the three
// averaged server metrics, newest-first, within the trailing window.
// metric must be one of "cpu_percent", "mem_used_mb", "disk_used_gb"
// (validated by the caller in internal/query).
func (s *Store) MetricSeries(ctx context.Context, metric string, hours float64) ([]float64, error) {
	cutoff := float64(time.Now().Unix()) - hours*3600
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+metric+` FROM server_metrics
		WHERE timestamp >= ?
		ORDER BY timestamp DESC`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// MetricSeriesWithTimestamps is MetricSeries but also returns the
// timestamp of each sample, newest-first, for trend comparisons.
func (s *Store) MetricSeriesWithTimestamps(ctx context.Context, metric string, hours float64) ([][2]float64, error) {
	cutoff := float64(time.Now().Unix()) - hours*3600
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, `+metric+` FROM server_metrics
		WHERE timestamp >= ?
		ORDER BY timestamp DESC`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][2]float64
	for rows.Next() {
		var ts, v float64
		if err := rows.Scan(&ts, &v); err != nil {
			return nil, err
		}
		out = append(out, [2]float64{ts, v})
	}
	return out, rows.Err()
}

// LatestSecurityMetrics returns the most recently written
// security_metrics row.
func (s *Store) LatestSecurityMetrics(ctx context.Context) (model.SecurityMetrics, error) {
	var m model.SecurityMetrics
	var ufw, fail2ban, rootLogin int
	err := s.db.QueryRowContext(ctx, `
		SELECT timestamp, ssh_intrusions_24h, ports_open, ufw_active, fail2ban_active, root_login_enabled
		FROM security_metrics ORDER BY timestamp DESC LIMIT 1`).
		Scan(&m.Timestamp, &m.SSHIntrusions24h, &m.PortsOpen, &ufw, &fail2ban, &rootLogin)
	if err != nil {
		return m, err
	}
	m.UFWActive = ufw != 0
	m.Fail2banActive = fail2ban != 0
	m.RootLoginEnabled = rootLogin != 0
	return m, nil
}

// LatestCronMetrics returns the most recently written cron_metrics row
// for each job name, newest tick only.
func (s *Store) LatestCronMetrics(ctx context.Context) ([]model.CronMetrics, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cm.timestamp, cm.job_name, cm.status, cm.last_run, cm.next_run, cm.consecutive_errors
		FROM cron_metrics cm
		INNER JOIN (
			SELECT job_name, MAX(timestamp) AS ts FROM cron_metrics GROUP BY job_name
		) latest ON latest.job_name = cm.job_name AND latest.ts = cm.timestamp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CronMetrics
	for rows.Next() {
		var m model.CronMetrics
		var status string
		if err := rows.Scan(&m.Timestamp, &m.JobName, &status, &m.LastRun, &m.NextRun, &m.ConsecutiveErrors); err != nil {
			return nil, err
		}
		m.Status = model.ParseCronStatus(status)
		out = append(out, m)
	}
	return out, rows.Err()
}

// LatestNetworkMetrics returns the most recently written
// network_metrics row.
func (s *Store) LatestNetworkMetrics(ctx context.Context) (model.NetworkMetrics, error) {
	var m model.NetworkMetrics
	err := s.db.QueryRowContext(ctx, `
		SELECT timestamp, active_connections, unique_ips
		FROM network_metrics ORDER BY timestamp DESC LIMIT 1`).
		Scan(&m.Timestamp, &m.ActiveConnections, &m.UniqueIPs)
	return m, err
}

// NetworkSeries returns active_connections samples newest-first within
// the trailing window.
func (s *Store) NetworkSeries(ctx context.Context, hours float64) ([]float64, error) {
	cutoff := float64(time.Now().Unix()) - hours*3600
	rows, err := s.db.QueryContext(ctx, `
		SELECT active_connections FROM network_metrics
		WHERE timestamp >= ?
		ORDER BY timestamp DESC`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
