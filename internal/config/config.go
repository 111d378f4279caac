// Package config handles both halves of GalacticCIC's configuration:
// the small user-facing dashboard preferences persisted to
// ~/.galactic_cic/config.json, and the process configuration (DB path
// overrides, log level, HTTP timeouts, geo API base URLs) layered
// through viper from defaults and environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DashboardConfig is the on-disk shape of config.json.
type DashboardConfig struct {
	Theme           string `json:"theme"`
	RefreshInterval int    `json:"refresh_interval"`
}

// DefaultDashboardConfig returns the config.json defaults used when no
// file exists yet.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{Theme: "phosphor", RefreshInterval: 2}
}

// DashboardConfigPath returns the conventional config.json location.
func DashboardConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".galactic_cic", "config.json"), nil
}

// LoadDashboardConfig reads config.json, returning defaults if the
// file does not exist yet.
func LoadDashboardConfig(path string) (DashboardConfig, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return DefaultDashboardConfig(), nil
	}
	if err != nil {
		return DashboardConfig{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := DefaultDashboardConfig()
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return DashboardConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.RefreshInterval < 1 {
		cfg.RefreshInterval = 1
	}
	return cfg, nil
}

// SaveDashboardConfig writes cfg to path, creating the parent
// directory if needed. Matches the teacher's plain-encoder style
// (indented, HTML-escaping disabled) used for report output.
func SaveDashboardConfig(path string, cfg DashboardConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()
	return encodeJSON(f, cfg)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// ProcessConfig is the daemon/CLI's own operating configuration,
// distinct from the dashboard's persisted preferences. It is resolved
// through viper so that environment variables (GALACTICCIC_*) can
// override the built-in defaults without editing any file.
type ProcessConfig struct {
	DBPath           string        `mapstructure:"db_path"`
	LogPath          string        `mapstructure:"log_path"`
	LogLevel         string        `mapstructure:"log_level"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
	NmapTimeout      time.Duration `mapstructure:"nmap_timeout"`
	GeoPrimaryURL    string        `mapstructure:"geo_primary_url"`
	GeoFallbackURL   string        `mapstructure:"geo_fallback_url"`
	GeoRateLimitHz   float64       `mapstructure:"geo_rate_limit_hz"`
	UpdateCheckURL   string        `mapstructure:"update_check_url"`
}

// LoadProcessConfig builds a viper instance layered as:
// built-in defaults < GALACTICCIC_* environment variables.
// No command-line flag is bound to the returned viper instance, and
// cmd/galacticcic does not bind any.
func LoadProcessConfig() (ProcessConfig, *viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("GALACTICCIC")
	v.AutomaticEnv()

	dbPath, err := defaultDBPath()
	if err != nil {
		return ProcessConfig{}, nil, err
	}
	logPath, err := defaultLogPath()
	if err != nil {
		return ProcessConfig{}, nil, err
	}

	v.SetDefault("db_path", dbPath)
	v.SetDefault("log_path", logPath)
	v.SetDefault("log_level", "info")
	v.SetDefault("http_timeout", 5*time.Second)
	v.SetDefault("nmap_timeout", 10*time.Second)
	v.SetDefault("geo_primary_url", "http://ip-api.com/json")
	v.SetDefault("geo_fallback_url", "https://ipinfo.io")
	v.SetDefault("geo_rate_limit_hz", 1.0)
	v.SetDefault("update_check_url", "https://api.github.com/repos/openclaw/openclaw/releases/latest")

	var cfg ProcessConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ProcessConfig{}, nil, fmt.Errorf("unmarshal process config: %w", err)
	}
	return cfg, v, nil
}

func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".galactic_cic", "metrics.db"), nil
}

func defaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".galactic_cic", "collector.log"), nil
}
