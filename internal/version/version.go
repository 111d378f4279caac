// Package version holds the single build-time version string shared
// by the `version` CLI verb and the SITREP update-check collector.
package version

// Version is overridable at link time via
// -ldflags "-X github.com/spacetrucker2196/galacticcic/internal/version.Version=...".
var Version = "0.1.0-dev"
