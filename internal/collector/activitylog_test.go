package collector

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/runner"
)

func TestActivityLogSplitsErrorsAndRecent(t *testing.T) {
	s := newTestStore(t)
	fr := &fakeRunner{results: map[string]*runner.Result{
		"openclaw": {Outcome: model.RunOK, Stdout: "agent main: session started\nagent worker: ERROR timeout reaching gateway\n"},
	}}
	c := NewActivityLog()
	c.ReadFile = func(string) ([]byte, error) { return nil, errNotFound }
	deps := Deps{Runner: fr, Store: s}

	out := c.Collect(context.Background(), deps)
	require.Equal(t, model.StateOK, out.State)

	entry, err := s.GetSitrepCache(context.Background(), ActivityLogCacheKey)
	require.NoError(t, err)
	var snap struct {
		Errors []model.LogEvent `json:"errors"`
		Recent []model.LogEvent `json:"recent"`
	}
	require.NoError(t, json.Unmarshal([]byte(entry.Payload), &snap))
	require.Len(t, snap.Errors, 1)
	require.Len(t, snap.Recent, 2)
}
