package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// GetDNSCache reads a dns_cache row by IP. sql.ErrNoRows surfaces as a
// miss to the caller.
func (s *Store) GetDNSCache(ctx context.Context, ip string) (model.DNSCacheEntry, error) {
	var e model.DNSCacheEntry
	e.IP = ip
	err := s.db.QueryRowContext(ctx, `SELECT hostname, resolved_at FROM dns_cache WHERE ip = ?`, ip).
		Scan(&e.Hostname, &e.ResolvedAt)
	return e, err
}

// PutDNSCache upserts a dns_cache row.
func (s *Store) PutDNSCache(ctx context.Context, e model.DNSCacheEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dns_cache (ip, hostname, resolved_at) VALUES (?, ?, ?)
		ON CONFLICT(ip) DO UPDATE SET hostname = excluded.hostname, resolved_at = excluded.resolved_at`,
		e.IP, e.Hostname, e.ResolvedAt)
	return err
}

// GetGeoCache reads a geo_cache row by IP.
func (s *Store) GetGeoCache(ctx context.Context, ip string) (model.GeoCacheEntry, error) {
	var e model.GeoCacheEntry
	e.IP = ip
	err := s.db.QueryRowContext(ctx, `SELECT country_code, city, isp, resolved_at FROM geo_cache WHERE ip = ?`, ip).
		Scan(&e.CountryCode, &e.City, &e.ISP, &e.ResolvedAt)
	return e, err
}

// PutGeoCache upserts a geo_cache row.
func (s *Store) PutGeoCache(ctx context.Context, e model.GeoCacheEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO geo_cache (ip, country_code, city, isp, resolved_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(ip) DO UPDATE SET country_code = excluded.country_code, city = excluded.city,
			isp = excluded.isp, resolved_at = excluded.resolved_at`,
		e.IP, e.CountryCode, e.City, e.ISP, e.ResolvedAt)
	return err
}

// GetAttackerScan reads an attacker_scans row by IP.
func (s *Store) GetAttackerScan(ctx context.Context, ip string) (model.AttackerScan, error) {
	var a model.AttackerScan
	a.IP = ip
	err := s.db.QueryRowContext(ctx, `SELECT open_ports, os_guess, scanned_at FROM attacker_scans WHERE ip = ?`, ip).
		Scan(&a.OpenPorts, &a.OSGuess, &a.ScannedAt)
	return a, err
}

// PutAttackerScan upserts an attacker_scans row.
func (s *Store) PutAttackerScan(ctx context.Context, a model.AttackerScan) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attacker_scans (ip, open_ports, os_guess, scanned_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(ip) DO UPDATE SET open_ports = excluded.open_ports, os_guess = excluded.os_guess,
			scanned_at = excluded.scanned_at`,
		a.IP, a.OpenPorts, a.OSGuess, a.ScannedAt)
	return err
}

// GetSitrepCache reads a sitrep_cache row by key.
func (s *Store) GetSitrepCache(ctx context.Context, key string) (model.SitrepCacheEntry, error) {
	var e model.SitrepCacheEntry
	e.Key = key
	err := s.db.QueryRowContext(ctx, `SELECT payload, cached_at FROM sitrep_cache WHERE key = ?`, key).
		Scan(&e.Payload, &e.CachedAt)
	return e, err
}

// PutSitrepCache upserts a sitrep_cache row.
func (s *Store) PutSitrepCache(ctx context.Context, e model.SitrepCacheEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sitrep_cache (key, payload, cached_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, cached_at = excluded.cached_at`,
		e.Key, e.Payload, e.CachedAt)
	return err
}

// IsNotFound reports whether err indicates a missing cache row.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
