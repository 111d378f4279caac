package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/spacetrucker2196/galacticcic/internal/cache"
	"github.com/spacetrucker2196/galacticcic/internal/model"
)

func TestGeolocationResolvesTopAttackers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"countryCode": "US", "city": "Springfield", "isp": "Acme ISP",
		})
	}))
	defer srv.Close()

	s := newTestStore(t)
	candidates := []AttackerCandidate{{IP: "9.9.9.9", Count: 5}}
	payload, err := json.Marshal(candidates)
	require.NoError(t, err)
	require.NoError(t, s.PutSitrepCache(context.Background(), model.SitrepCacheEntry{
		Key: TopAttackersCacheKey, Payload: string(payload), CachedAt: 1,
	}))

	c := NewGeolocation(srv.URL, srv.URL)
	deps := Deps{
		Store:      s,
		GeoCache:   cache.NewGeoCache(s),
		HTTPClient: srv.Client(),
		GeoLimiter: rate.NewLimiter(rate.Inf, 1),
		Now:        func() time.Time { return time.Now() },
	}

	out := c.Collect(context.Background(), deps)
	require.Equal(t, model.StateOK, out.State)

	entry, err := s.GetGeoCache(context.Background(), "9.9.9.9")
	require.NoError(t, err)
	require.Equal(t, "US", entry.CountryCode)
	require.Equal(t, "Springfield", entry.City)
}
