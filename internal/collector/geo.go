package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spacetrucker2196/galacticcic/internal/cache"
	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// geoAPIResponse is the shape common to ip-api.com-style free
// geolocation endpoints.
type geoAPIResponse struct {
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	ISP         string `json:"isp"`
}

// Geolocation resolves country/city/ISP for the top failed-login IPs
// the security collector names, via a free HTTP geolocation endpoint
// with a fallback, rate-limited to deps.GeoLimiter's global cap.
type Geolocation struct {
	PrimaryURL  string
	FallbackURL string
}

// NewGeolocation builds the glacial-tier geolocation collector.
func NewGeolocation(primaryURL, fallbackURL string) *Geolocation {
	return &Geolocation{PrimaryURL: primaryURL, FallbackURL: fallbackURL}
}

func (c *Geolocation) Name() string { return "geolocation" }
func (c *Geolocation) Tier() Tier   { return TierGlacial }

func (c *Geolocation) Collect(ctx context.Context, deps Deps) Outcome {
	if deps.GeoCache == nil || deps.HTTPClient == nil {
		return Outcome{State: model.StateDegraded, Detail: "geo cache/http client not wired"}
	}

	entry, err := deps.Store.GetSitrepCache(ctx, TopAttackersCacheKey)
	if err != nil {
		return Outcome{State: model.StateOK}
	}
	var candidates []AttackerCandidate
	if err := json.Unmarshal([]byte(entry.Payload), &candidates); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}

	now := deps.nowOrDefault()
	for _, a := range candidates {
		_, result, _, err := deps.GeoCache.Get(ctx, a.IP, now)
		if err != nil || result == cache.Fresh {
			continue
		}
		ip := a.IP
		_, err = deps.GeoCache.Refresh(ip, func() (model.GeoCacheEntry, error) {
			if deps.GeoLimiter != nil {
				if err := deps.GeoLimiter.Wait(ctx); err != nil {
					return model.GeoCacheEntry{}, err
				}
			}
			resp, err := c.lookup(ctx, deps.HTTPClient, c.PrimaryURL, ip)
			if err != nil {
				resp, err = c.lookup(ctx, deps.HTTPClient, c.FallbackURL, ip)
			}
			if err != nil {
				return model.GeoCacheEntry{}, err
			}
			entry := model.GeoCacheEntry{IP: ip, CountryCode: resp.CountryCode, City: resp.City, ISP: resp.ISP}
			return entry, deps.GeoCache.Put(ctx, ip, entry, now)
		})
		if err != nil {
			continue
		}
	}
	return Outcome{State: model.StateOK}
}

func (c *Geolocation) lookup(ctx context.Context, client *http.Client, baseURL, ip string) (geoAPIResponse, error) {
	var out geoAPIResponse
	url := fmt.Sprintf("%s/%s", baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return out, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("geo lookup %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
