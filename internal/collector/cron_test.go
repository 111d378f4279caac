package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/runner"
)

func TestCronJobsCollectWritesRows(t *testing.T) {
	s := newTestStore(t)
	fr := &fakeRunner{results: map[string]*runner.Result{
		"openclaw": {Outcome: model.RunOK, Stdout: "" +
			"backup-db  status=ok  last_run=1700000000  next_run=1700003600  errors=0\n" +
			"rotate-logs  status=weird  last_run=1700000000  next_run=1700003600\n"},
	}}
	c := NewCronJobs()
	deps := Deps{Runner: fr, Store: s}

	out := c.Collect(context.Background(), deps)
	require.Equal(t, model.StateOK, out.State)
}

func TestCronJobsDegradedOnMissingBinary(t *testing.T) {
	s := newTestStore(t)
	fr := &fakeRunner{results: map[string]*runner.Result{}}
	c := NewCronJobs()
	deps := Deps{Runner: fr, Store: s}

	out := c.Collect(context.Background(), deps)
	require.Equal(t, model.StateDegraded, out.State)
}
