package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/runner"
)

func TestPlatformStatusCollectPersistsChannels(t *testing.T) {
	s := newTestStore(t)
	fr := &fakeRunner{results: map[string]*runner.Result{
		"openclaw": {Outcome: model.RunOK, Stdout: "api: ok\ngateway: ok\n"},
	}}
	c := NewPlatformStatus()
	deps := Deps{Runner: fr, Store: s}

	out := c.Collect(context.Background(), deps)
	require.Equal(t, model.StateOK, out.State)

	entry, err := s.GetSitrepCache(context.Background(), PlatformStatusCacheKey)
	require.NoError(t, err)
	require.Contains(t, entry.Payload, "api")
}
