package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseListeningPorts(t *testing.T) {
	raw := `Netid State  Recv-Q Send-Q Local Address:Port Peer Address:Port Process
tcp   LISTEN 0      128    0.0.0.0:22        0.0.0.0:*          users:(("sshd",pid=1,fd=3))
tcp   LISTEN 0      128    127.0.0.1:8080    0.0.0.0:*
`
	ports := ParseListeningPorts(raw)
	require.Len(t, ports, 2)
	require.Equal(t, 22, ports[0].Port)
	require.Equal(t, "sshd", ports[0].Service)
	require.Equal(t, 8080, ports[1].Port)
	require.Equal(t, "", ports[1].Service)
}
