package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/version"
)

// updateCheckResponse mirrors the fields this collector cares about
// from a GitHub-releases-style "latest release" endpoint.
type updateCheckResponse struct {
	TagName string `json:"tag_name"`
}

// sitrepUpdateSnapshot is the payload persisted under the SITREP
// update-check sub-key.
type sitrepUpdateSnapshot struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	UpdateAvailable bool   `json:"update_available"`
}

// actionItem is one line of the SITREP panel's aggregated action
// items: problems surfaced by other collectors that are worth calling
// out explicitly rather than leaving buried in a panel.
type actionItem struct {
	Severity string `json:"severity"` // "warning" | "info"
	Message  string `json:"message"`
}

// Sitrep aggregates update availability and cross-cutting action
// items (root login enabled, firewall down, cron jobs erroring) from
// data other collectors have already written to the store. Channel
// health is collected separately by PlatformStatus.
type Sitrep struct {
	UpdateCheckURL string
}

// NewSitrep builds the slow-tier SITREP collector.
func NewSitrep(updateCheckURL string) *Sitrep {
	return &Sitrep{UpdateCheckURL: updateCheckURL}
}

func (c *Sitrep) Name() string { return "sitrep" }
func (c *Sitrep) Tier() Tier   { return TierSlow }

func (c *Sitrep) Collect(ctx context.Context, deps Deps) Outcome {
	now := deps.nowOrDefault()
	ts := float64(now.Unix())

	if deps.HTTPClient != nil {
		if snapshot, err := c.checkUpdate(ctx, deps.HTTPClient); err == nil {
			if payload, err := json.Marshal(snapshot); err == nil {
				_ = deps.Store.PutSitrepCache(ctx, model.SitrepCacheEntry{
					Key: "update_check", Payload: string(payload), CachedAt: ts,
				})
			}
		}
		// Update-check failures are not reported as a degraded
		// collector outcome: a missing network path to GitHub should
		// not blank the rest of the SITREP panel.
	}

	items := c.actionItems(ctx, deps)
	payload, err := json.Marshal(items)
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	entry := model.SitrepCacheEntry{Key: "action_items", Payload: string(payload), CachedAt: ts}
	if err := deps.Store.PutSitrepCache(ctx, entry); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	return Outcome{State: model.StateOK}
}

func (c *Sitrep) checkUpdate(ctx context.Context, client *http.Client) (sitrepUpdateSnapshot, error) {
	var out sitrepUpdateSnapshot
	out.CurrentVersion = version.Version

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.UpdateCheckURL, nil)
	if err != nil {
		return out, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return out, nil
	}
	var body updateCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return out, err
	}
	out.LatestVersion = body.TagName
	out.UpdateAvailable = body.TagName != "" && body.TagName != version.Version
	return out, nil
}

func (c *Sitrep) actionItems(ctx context.Context, deps Deps) []actionItem {
	var items []actionItem

	if sec, err := deps.Store.LatestSecurityMetrics(ctx); err == nil {
		if sec.RootLoginEnabled {
			items = append(items, actionItem{Severity: "warning", Message: "SSH root login is enabled"})
		}
		if !sec.UFWActive {
			items = append(items, actionItem{Severity: "warning", Message: "UFW firewall is inactive"})
		}
		if !sec.Fail2banActive {
			items = append(items, actionItem{Severity: "info", Message: "fail2ban is inactive"})
		}
	}

	if jobs, err := deps.Store.LatestCronMetrics(ctx); err == nil {
		for _, j := range jobs {
			if j.Status == model.CronError || j.ConsecutiveErrors > 0 {
				items = append(items, actionItem{
					Severity: "warning",
					Message:  j.JobName + " has failed " + strconv.Itoa(j.ConsecutiveErrors) + " time(s) in a row",
				})
			}
		}
	}
	return items
}
