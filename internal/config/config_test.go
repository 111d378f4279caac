package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDashboardConfigMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := LoadDashboardConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultDashboardConfig(), cfg)
}

func TestSaveThenLoadDashboardConfigRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	want := DashboardConfig{Theme: "amber", RefreshInterval: 5}

	require.NoError(t, SaveDashboardConfig(path, want))

	got, err := LoadDashboardConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadProcessConfigDefaults(t *testing.T) {
	cfg, _, err := LoadProcessConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1.0, cfg.GeoRateLimitHz)
}
