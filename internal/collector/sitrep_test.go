package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

func TestSitrepActionItemsFlagInsecurePosture(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteSecurityMetrics(context.Background(), model.SecurityMetrics{
		Timestamp: 1, RootLoginEnabled: true, UFWActive: false, Fail2banActive: false,
	}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewSitrep(srv.URL)
	deps := Deps{Store: s, HTTPClient: srv.Client()}

	out := c.Collect(context.Background(), deps)
	require.Equal(t, model.StateOK, out.State)

	entry, err := s.GetSitrepCache(context.Background(), "action_items")
	require.NoError(t, err)
	var items []map[string]string
	require.NoError(t, json.Unmarshal([]byte(entry.Payload), &items))
	require.GreaterOrEqual(t, len(items), 3)
}
