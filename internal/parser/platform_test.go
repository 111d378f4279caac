package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePlatformStatus(t *testing.T) {
	raw := "api: ok\ngateway: degraded\nscheduler: OK\n"
	channels := ParsePlatformStatus(raw)
	require.Len(t, channels, 3)
	require.Equal(t, "api", channels[0].Name)
	require.True(t, channels[0].Healthy)
	require.False(t, channels[1].Healthy)
	require.True(t, channels[2].Healthy)
}
