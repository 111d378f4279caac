package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootLoginEnabled(t *testing.T) {
	require.True(t, RootLoginEnabled("PermitRootLogin yes\n"))
	require.False(t, RootLoginEnabled("#PermitRootLogin yes\nPermitRootLogin no\n"))
	require.False(t, RootLoginEnabled("# no directive here\n"))
}

func TestUFWActive(t *testing.T) {
	require.True(t, UFWActive("Status: active\n\nTo   Action  From\n"))
	require.False(t, UFWActive("Status: inactive\n"))
}

func TestFail2banActive(t *testing.T) {
	require.True(t, Fail2banActive("active\n"))
	require.False(t, Fail2banActive("inactive\n"))
}
