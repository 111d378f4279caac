package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainRendererDrawWritesEveryPanel(t *testing.T) {
	var buf bytes.Buffer
	r := PlainRenderer{W: &buf}

	f := Frame{
		Theme: Phosphor,
		AgentFleet: AgentFleetPanel{
			Rows: []Row{{Cells: []string{"main", "ok", "1200"}}},
		},
		Network: NetworkPanel{
			TopPeers: []Row{{Cells: []string{"1.2.3.4", "3"}}},
		},
	}

	require.NoError(t, r.Draw(f))
	out := buf.String()
	require.Contains(t, out, "phosphor theme")
	require.Contains(t, out, "main")
	require.Contains(t, out, "1.2.3.4")
	require.True(t, strings.Contains(out, "-- server health --"))
}
