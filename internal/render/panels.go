package render

import "github.com/spacetrucker2196/galacticcic/internal/query"

// Row is one rendered line of a table-shaped panel, with the semantic
// role the Renderer should paint it in.
type Row struct {
	Cells []string
	Role  Role
}

// AgentFleetPanel is the Agent Fleet panel's data.
type AgentFleetPanel struct {
	Rows          []Row
	TotalSessions int
	TotalTokens   int64
	Unavailable   bool // true when the openclaw binary is missing
}

// ServerHealthPanel is the Server Health panel's data.
type ServerHealthPanel struct {
	CPUPercent     float64
	CPURole        Role
	MemUsedMB      float64
	MemTotalMB     float64
	MemRole        Role
	DiskUsedGB     float64
	DiskTotalGB    float64
	DiskRole       Role
	Load1, Load5, Load15 float64
	CPUSparkline   string
	MemSparkline   string
	CPUTrend       query.Trend
}

// CronJobsPanel is the Cron Jobs panel's data.
type CronJobsPanel struct {
	Rows        []Row
	Unavailable bool
}

// SecurityPanel is the Security panel's data.
type SecurityPanel struct {
	SSHIntrusions24h int
	PortsOpen        int
	UFWActive        bool
	Fail2banActive   bool
	RootLoginEnabled bool
	TopAttackers     []Row
	NmapActive       bool
	NmapCount        int
}

// ActivityLogPanel is the Activity Log panel's data, split into
// errors and recent streams per spec.md §4.5.
type ActivityLogPanel struct {
	Errors []Row
	Recent []Row
	Filter string // optional substring filter; UI correctness never depends on it being set
}

// SitrepPanel is the SITREP panel's data.
type SitrepPanel struct {
	ChannelHealth []Row
	UpdateAvailable bool
	ActionItems   []Row
}

// NetworkPanel data, surfaced as part of Server Health or its own
// tile depending on layout; modeled separately since it is sourced
// from a distinct tier/table.
type NetworkPanel struct {
	ActiveConnections int
	UniqueIPs         int
	Sparkline         string
	TopPeers          []Row
}

// Frame is everything the Renderer needs for one draw cycle.
type Frame struct {
	Layout   Layout
	Theme    Theme
	Focus    PanelID
	AgentFleet    AgentFleetPanel
	ServerHealth  ServerHealthPanel
	CronJobs      CronJobsPanel
	Security      SecurityPanel
	ActivityLog   ActivityLogPanel
	Sitrep        SitrepPanel
	Network       NetworkPanel
}

// Renderer consumes already-structured panel data and draws it. The
// concrete terminal drawing implementation is out of scope here;
// Renderer is the seam a TUI library would be plugged in behind.
type Renderer interface {
	Draw(Frame) error
}
