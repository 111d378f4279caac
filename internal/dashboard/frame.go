// Package dashboard assembles render.Frame values from the Query
// Layer and runs the read-only dashboard's render loop: a background
// worker pulling from the store at a bounded rate, and a render.Renderer
// driven by the resulting frames.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/query"
	"github.com/spacetrucker2196/galacticcic/internal/render"
	"github.com/spacetrucker2196/galacticcic/internal/store"
)

// sitrepCacheKeys mirror the reserved keys internal/collector writes
// sitrep_cache snapshots under (see DESIGN.md's Open Question #4
// resolution for why these have no dedicated table).
const (
	keyTopProcesses = "top_processes"
	keyTopPeers     = "top_peers"
	keyTopAttackers = "top_attackers"
	keyChannels     = "channels"
	keyActivityLog  = "activity_log"
	keyUpdateCheck  = "update_check"
	keyActionItems  = "action_items"
)

// Build queries the store for every panel and assembles one Frame.
// Missing or stale data degrades each panel independently (e.g. an
// unreadable sitrep_cache key leaves that panel's rows empty rather
// than failing the whole frame), matching spec.md §7's store-read
// failure treatment.
func Build(ctx context.Context, q *query.Queries, s *store.Store, theme render.Theme, focus render.PanelID, layout render.Layout) render.Frame {
	f := render.Frame{Layout: layout, Theme: theme, Focus: focus}

	f.ServerHealth = buildServerHealth(ctx, q, s)
	f.AgentFleet = buildAgentFleet(ctx, s)
	f.CronJobs = buildCronJobs(ctx, s)
	f.Security = buildSecurity(ctx, s)
	f.Network = buildNetwork(ctx, q, s)
	f.ActivityLog = buildActivityLog(ctx, s)
	f.Sitrep = buildSitrep(ctx, s)

	return f
}

func buildServerHealth(ctx context.Context, q *query.Queries, s *store.Store) render.ServerHealthPanel {
	var p render.ServerHealthPanel
	rows, err := s.RecentServerMetrics(ctx, 1, 1)
	if err != nil || len(rows) == 0 {
		return p
	}
	latest := rows[0]
	p.CPUPercent = latest.CPUPercent
	p.MemUsedMB = latest.MemUsedMB
	p.MemTotalMB = latest.MemTotalMB
	p.DiskUsedGB = latest.DiskUsedGB
	p.DiskTotalGB = latest.DiskTotalGB
	p.Load1, p.Load5, p.Load15 = latest.Load1m, latest.Load5m, latest.Load15m
	p.CPURole = roleForPercent(latest.CPUPercent)
	p.MemRole = roleForPercent(100 * latest.MemUsedMB / nonZero(latest.MemTotalMB))
	p.DiskRole = roleForPercent(100 * latest.DiskUsedGB / nonZero(latest.DiskTotalGB))

	p.CPUSparkline, _ = q.Sparkline(ctx, "cpu_percent", 1, 20)
	p.MemSparkline, _ = q.Sparkline(ctx, "mem_used_mb", 1, 20)
	trend, _ := q.Trend(ctx, "cpu_percent", time.Hour)
	p.CPUTrend = trend
	return p
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func roleForPercent(pct float64) render.Role {
	switch {
	case pct >= 90:
		return render.RoleError
	case pct >= 75:
		return render.RoleWarning
	default:
		return render.RoleNormal
	}
}

func buildAgentFleet(ctx context.Context, s *store.Store) render.AgentFleetPanel {
	var p render.AgentFleetPanel
	agents, err := s.LatestAgentMetrics(ctx)
	if err != nil || len(agents) == 0 {
		p.Unavailable = true
		return p
	}
	for _, a := range agents {
		name := a.Name
		if a.IsDefault {
			name += "*"
		}
		p.Rows = append(p.Rows, render.Row{Cells: []string{name, strconv.FormatInt(a.Tokens, 10), strconv.Itoa(a.Sessions)}})
		p.TotalTokens += a.Tokens
		p.TotalSessions += a.Sessions
	}
	return p
}

func buildCronJobs(ctx context.Context, s *store.Store) render.CronJobsPanel {
	var p render.CronJobsPanel
	jobs, err := s.LatestCronMetrics(ctx)
	if err != nil {
		p.Unavailable = true
		return p
	}
	for _, j := range jobs {
		role := render.RoleNormal
		if j.Status == model.CronError || j.ConsecutiveErrors > 0 {
			role = render.RoleWarning
		}
		p.Rows = append(p.Rows, render.Row{
			Cells: []string{j.JobName, j.Status.String(), strconv.Itoa(j.ConsecutiveErrors)},
			Role:  role,
		})
	}
	return p
}

func buildSecurity(ctx context.Context, s *store.Store) render.SecurityPanel {
	var p render.SecurityPanel
	m, err := s.LatestSecurityMetrics(ctx)
	if err == nil {
		p.SSHIntrusions24h = m.SSHIntrusions24h
		p.PortsOpen = m.PortsOpen
		p.UFWActive = m.UFWActive
		p.Fail2banActive = m.Fail2banActive
		p.RootLoginEnabled = m.RootLoginEnabled
	}

	entry, err := s.GetSitrepCache(ctx, keyTopAttackers)
	if err != nil {
		return p
	}
	var candidates []struct {
		IP    string `json:"ip"`
		Count int    `json:"count"`
	}
	if json.Unmarshal([]byte(entry.Payload), &candidates) == nil {
		for _, c := range candidates {
			p.TopAttackers = append(p.TopAttackers, render.Row{Cells: []string{c.IP, strconv.Itoa(c.Count)}})
		}
	}
	return p
}

func buildNetwork(ctx context.Context, q *query.Queries, s *store.Store) render.NetworkPanel {
	var p render.NetworkPanel
	if m, err := s.LatestNetworkMetrics(ctx); err == nil {
		p.ActiveConnections = m.ActiveConnections
		p.UniqueIPs = m.UniqueIPs
	}
	p.Sparkline, _ = q.NetworkSparkline(ctx, 1, 20)

	entry, err := s.GetSitrepCache(ctx, keyTopPeers)
	if err != nil {
		return p
	}
	var peers []struct {
		IP       string `json:"ip"`
		Hostname string `json:"hostname"`
		Count    int    `json:"count"`
	}
	if json.Unmarshal([]byte(entry.Payload), &peers) == nil {
		for _, peer := range peers {
			label := peer.IP
			if peer.Hostname != "" {
				label = fmt.Sprintf("%s (%s)", peer.IP, peer.Hostname)
			}
			p.TopPeers = append(p.TopPeers, render.Row{Cells: []string{label, strconv.Itoa(peer.Count)}})
		}
	}
	return p
}

func buildActivityLog(ctx context.Context, s *store.Store) render.ActivityLogPanel {
	var p render.ActivityLogPanel
	entry, err := s.GetSitrepCache(ctx, keyActivityLog)
	if err != nil {
		return p
	}
	var snap struct {
		Errors []model.LogEvent `json:"errors"`
		Recent []model.LogEvent `json:"recent"`
	}
	if json.Unmarshal([]byte(entry.Payload), &snap) != nil {
		return p
	}
	for _, e := range snap.Errors {
		p.Errors = append(p.Errors, render.Row{Cells: []string{e.Source, e.Message}, Role: render.RoleError})
	}
	for _, e := range snap.Recent {
		p.Recent = append(p.Recent, render.Row{Cells: []string{e.Source, e.Message}})
	}
	return p
}

func buildSitrep(ctx context.Context, s *store.Store) render.SitrepPanel {
	var p render.SitrepPanel

	if entry, err := s.GetSitrepCache(ctx, keyChannels); err == nil {
		var channels []struct {
			Name    string `json:"name"`
			Healthy bool   `json:"healthy"`
		}
		if json.Unmarshal([]byte(entry.Payload), &channels) == nil {
			for _, c := range channels {
				role := render.RoleNormal
				status := "ok"
				if !c.Healthy {
					role = render.RoleWarning
					status = "degraded"
				}
				p.ChannelHealth = append(p.ChannelHealth, render.Row{Cells: []string{c.Name, status}, Role: role})
			}
		}
	}

	if entry, err := s.GetSitrepCache(ctx, keyUpdateCheck); err == nil {
		var snap struct {
			UpdateAvailable bool `json:"update_available"`
		}
		if json.Unmarshal([]byte(entry.Payload), &snap) == nil {
			p.UpdateAvailable = snap.UpdateAvailable
		}
	}

	if entry, err := s.GetSitrepCache(ctx, keyActionItems); err == nil {
		var items []struct {
			Severity string `json:"severity"`
			Message  string `json:"message"`
		}
		if json.Unmarshal([]byte(entry.Payload), &items) == nil {
			for _, item := range items {
				role := render.RoleNormal
				if item.Severity == "warning" {
					role = render.RoleWarning
				}
				p.ActionItems = append(p.ActionItems, render.Row{Cells: []string{item.Severity, item.Message}, Role: role})
			}
		}
	}

	return p
}
