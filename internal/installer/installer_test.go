package installer

import (
	"bytes"
	"testing"
	"text/template"

	"github.com/stretchr/testify/require"
)

func TestUnitTemplateRendersExecStartAndEnv(t *testing.T) {
	tmpl, err := template.New("unit").Parse(unitTemplate)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, UnitParams{
		BinaryPath: "/usr/local/bin/galacticcic",
		DBPath:     "/home/user/.galactic_cic/metrics.db",
		LogPath:    "/home/user/.galactic_cic/collector.log",
	}))

	out := buf.String()
	require.Contains(t, out, "ExecStart=/usr/local/bin/galacticcic start --foreground")
	require.Contains(t, out, "GALACTICCIC_DB_PATH=/home/user/.galactic_cic/metrics.db")
	require.Contains(t, out, "[Install]")
}

func TestUnitPathUnderSystemdUserDir(t *testing.T) {
	path, err := UnitPath()
	require.NoError(t, err)
	require.Contains(t, path, ".config/systemd/user/galacticcic.service")
}
