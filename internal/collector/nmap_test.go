package collector

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/cache"
	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/runner"
	"github.com/spacetrucker2196/galacticcic/internal/state"
)

func TestAttackerNmapScansAndMarksActive(t *testing.T) {
	s := newTestStore(t)
	candidates := []AttackerCandidate{{IP: "9.9.9.9", Count: 5}}
	payload, err := json.Marshal(candidates)
	require.NoError(t, err)
	require.NoError(t, s.PutSitrepCache(context.Background(), model.SitrepCacheEntry{
		Key: TopAttackersCacheKey, Payload: string(payload), CachedAt: 1,
	}))

	fr := &fakeRunner{results: map[string]*runner.Result{
		"nmap": {Outcome: model.RunOK, Stdout: "22/tcp   open  ssh\n80/tcp   open  http\nOS guesses: Linux 5.X\n"},
	}}
	active := state.NewNmapActive()
	c := NewAttackerNmap()
	deps := Deps{
		Runner:        fr,
		Store:         s,
		AttackerCache: cache.NewAttackerScanCache(s),
		NmapActive:    active,
		Now:           func() time.Time { return time.Now() },
	}

	out := c.Collect(context.Background(), deps)
	require.Equal(t, model.StateOK, out.State)
	require.False(t, active.Active())

	entry, err := s.GetAttackerScan(context.Background(), "9.9.9.9")
	require.NoError(t, err)
	require.Contains(t, entry.OpenPorts, "22")
	require.Equal(t, "Linux 5.X", entry.OSGuess)
}
