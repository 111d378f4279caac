package model

// ServerMetrics is one row of the server_metrics time series.
type ServerMetrics struct {
	Timestamp   float64 `json:"timestamp"`
	CPUPercent  float64 `json:"cpu_percent"`
	MemUsedMB   float64 `json:"mem_used_mb"`
	MemTotalMB  float64 `json:"mem_total_mb"`
	DiskUsedGB  float64 `json:"disk_used_gb"`
	DiskTotalGB float64 `json:"disk_total_gb"`
	Load1m      float64 `json:"load_1m"`
	Load5m      float64 `json:"load_5m"`
	Load15m     float64 `json:"load_15m"`
}

// AgentMetrics is one row of the agent_metrics time series, one per
// agent per tick.
type AgentMetrics struct {
	Timestamp    float64 `json:"timestamp"`
	AgentName    string  `json:"agent_name"`
	Model        string  `json:"model"`
	TokensUsed   int64   `json:"tokens_used"`
	Sessions     int     `json:"sessions"`
	StorageBytes int64   `json:"storage_bytes"`
	IsDefault    bool    `json:"is_default"`
}

// CronMetrics is one row of the cron_metrics time series, one per job
// per tick.
type CronMetrics struct {
	Timestamp         float64    `json:"timestamp"`
	JobName           string     `json:"job_name"`
	Status            CronStatus `json:"status"`
	LastRun           float64    `json:"last_run"`
	NextRun           float64    `json:"next_run"`
	ConsecutiveErrors int        `json:"consecutive_errors"`
}

// SecurityMetrics is one row of the security_metrics time series.
type SecurityMetrics struct {
	Timestamp         float64 `json:"timestamp"`
	SSHIntrusions24h  int     `json:"ssh_intrusions_24h"`
	PortsOpen         int     `json:"ports_open"`
	UFWActive         bool    `json:"ufw_active"`
	Fail2banActive    bool    `json:"fail2ban_active"`
	RootLoginEnabled  bool    `json:"root_login_enabled"`
}

// NetworkMetrics is one row of the network_metrics time series.
type NetworkMetrics struct {
	Timestamp         float64 `json:"timestamp"`
	ActiveConnections int     `json:"active_connections"`
	UniqueIPs         int     `json:"unique_ips"`
}

// PortScan is one row of the port_scans table, one per open port per
// tick.
type PortScan struct {
	Timestamp float64 `json:"timestamp"`
	Port      int     `json:"port"`
	Service   string  `json:"service"`
	State     string  `json:"state"`
}

// DNSCacheEntry is one row of dns_cache.
type DNSCacheEntry struct {
	IP         string  `json:"ip"`
	Hostname   string  `json:"hostname"`
	ResolvedAt float64 `json:"resolved_at"`
}

// GeoCacheEntry is one row of geo_cache.
type GeoCacheEntry struct {
	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	City        string  `json:"city"`
	ISP         string  `json:"isp"`
	ResolvedAt  float64 `json:"resolved_at"`
}

// AttackerScan is one row of attacker_scans.
type AttackerScan struct {
	IP        string  `json:"ip"`
	OpenPorts string  `json:"open_ports"` // CSV
	OSGuess   string  `json:"os_guess"`
	ScannedAt float64 `json:"scanned_at"`
}

// SitrepCacheEntry is one row of sitrep_cache.
type SitrepCacheEntry struct {
	Key      string  `json:"key"`
	Payload  string  `json:"payload"`
	CachedAt float64 `json:"cached_at"`
}

// AgentRecord is the parsed shape of one line of `openclaw agents list`
// output, before it is stamped with a timestamp and written as an
// AgentMetrics row.
type AgentRecord struct {
	Name      string
	Model     string
	Sessions  int
	Tokens    int64
	Storage   int64
	IsDefault bool
}

// CronRecord is the parsed shape of one line of `openclaw cron list`.
type CronRecord struct {
	JobName           string
	Status            CronStatus
	LastRun           float64
	NextRun           float64
	ConsecutiveErrors int
}

// ConnectionCount is one (peer IP, count) pair parsed from `ss -tnp`.
type ConnectionCount struct {
	PeerIP string
	Count  int
}

// LoginCount is one (ip, count, last_seen) triple parsed from the auth
// log, restricted to the trailing 24h window.
type LoginCount struct {
	IP       string
	Count    int
	LastSeen float64
}

// AuthLogResult is the total output of the auth-log parser: two
// streams, accepted and failed logins.
type AuthLogResult struct {
	Accepted []LoginCount
	Failed   []LoginCount
}

// NmapResult is the parsed shape of an nmap scan of one IP.
type NmapResult struct {
	IP       string
	Ports    []PortScan
	OSGuess  string
}

// LogEvent is one line of the activity log, already classified.
type LogEvent struct {
	Timestamp float64
	Source    string // "openclaw", "ssh", "cron", "system"
	IsError   bool
	Message   string
}
