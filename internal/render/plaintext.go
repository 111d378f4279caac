package render

import (
	"fmt"
	"io"
)

// PlainRenderer is the one concrete Renderer shipped in this repo: it
// writes each panel as plain text lines to an io.Writer. The
// byte-level curses/TUI drawing a real terminal UI would use is out
// of scope; PlainRenderer exists so `dashboard` has something to
// drive behind the Renderer seam, and so the query-to-panel pipeline
// is exercised end to end without a third-party TUI dependency.
type PlainRenderer struct {
	W io.Writer
}

// Draw writes f to the renderer's writer. It never returns an error
// from the writer itself failing mid-frame; partial output on a
// broken pipe is acceptable for a diagnostic text dump.
func (r PlainRenderer) Draw(f Frame) error {
	fmt.Fprintf(r.W, "=== GalacticCIC (%s theme) ===\n", f.Theme.Name)

	fmt.Fprintf(r.W, "-- server health --\n")
	fmt.Fprintf(r.W, "cpu=%.1f%% mem=%.0f/%.0fMB disk=%.0f/%.0fGB load=%.2f/%.2f/%.2f trend=%s\n",
		f.ServerHealth.CPUPercent, f.ServerHealth.MemUsedMB, f.ServerHealth.MemTotalMB,
		f.ServerHealth.DiskUsedGB, f.ServerHealth.DiskTotalGB,
		f.ServerHealth.Load1, f.ServerHealth.Load5, f.ServerHealth.Load15, f.ServerHealth.CPUTrend)

	fmt.Fprintf(r.W, "-- agent fleet -- sessions=%d tokens=%d\n", f.AgentFleet.TotalSessions, f.AgentFleet.TotalTokens)
	writeRows(r.W, f.AgentFleet.Rows)

	fmt.Fprintf(r.W, "-- cron jobs --\n")
	writeRows(r.W, f.CronJobs.Rows)

	fmt.Fprintf(r.W, "-- security -- ssh_intrusions_24h=%d ports_open=%d ufw=%v fail2ban=%v root_login=%v nmap_active=%v\n",
		f.Security.SSHIntrusions24h, f.Security.PortsOpen, f.Security.UFWActive,
		f.Security.Fail2banActive, f.Security.RootLoginEnabled, f.Security.NmapActive)
	writeRows(r.W, f.Security.TopAttackers)

	fmt.Fprintf(r.W, "-- network -- active=%d unique_ips=%d\n", f.Network.ActiveConnections, f.Network.UniqueIPs)
	writeRows(r.W, f.Network.TopPeers)

	fmt.Fprintf(r.W, "-- activity log --\n")
	writeRows(r.W, f.ActivityLog.Errors)
	writeRows(r.W, f.ActivityLog.Recent)

	fmt.Fprintf(r.W, "-- sitrep -- update_available=%v\n", f.Sitrep.UpdateAvailable)
	writeRows(r.W, f.Sitrep.ChannelHealth)
	writeRows(r.W, f.Sitrep.ActionItems)

	return nil
}

func writeRows(w io.Writer, rows []Row) {
	for _, row := range rows {
		for i, cell := range row.Cells {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
}
