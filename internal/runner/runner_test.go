package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

func TestRunMissingBinary(t *testing.T) {
	r := NewExecRunner()
	res, err := r.Run(context.Background(), time.Second, "definitely-not-a-real-binary-xyz")
	require.NoError(t, err)
	assert.Equal(t, model.RunMissing, res.Outcome)
}

func TestRunOK(t *testing.T) {
	r := NewExecRunner()
	res, err := r.Run(context.Background(), time.Second, "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, model.RunOK, res.Outcome)
	assert.Contains(t, res.Stdout, "hello")
}

func TestRunNonZero(t *testing.T) {
	r := NewExecRunner()
	res, err := r.Run(context.Background(), time.Second, "false")
	require.NoError(t, err)
	assert.Equal(t, model.RunNonZero, res.Outcome)
}

func TestRunTimeout(t *testing.T) {
	r := NewExecRunner()
	res, err := r.Run(context.Background(), 50*time.Millisecond, "sleep", "5")
	require.NoError(t, err)
	assert.Equal(t, model.RunTimeout, res.Outcome)
}

func TestRunRespectsParentCancellation(t *testing.T) {
	r := NewExecRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := r.Run(ctx, time.Second, "sleep", "5")
	require.NoError(t, err)
	assert.Equal(t, model.RunTimeout, res.Outcome)
}
