package collector

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
)

const (
	authLogPath    = "/var/log/auth.log"
	sshdConfigPath = "/etc/ssh/sshd_config"

	// TopAttackersTracked bounds how many failed-login IPs the
	// glacial-tier geolocation and nmap collectors chase down.
	TopAttackersTracked = 3

	// TopAttackersCacheKey is the sitrep_cache key the top-N
	// failed-login IPs are persisted under, same generic
	// keyed-snapshot mechanism as top_processes/top_peers/channels.
	TopAttackersCacheKey = "top_attackers"
)

// AttackerCandidate is one row of the persisted top-failed-login-IPs
// snapshot the geolocation and nmap collectors consume.
type AttackerCandidate struct {
	IP    string `json:"ip"`
	Count int    `json:"count"`
}

// Security collects SSH login activity, listening ports, and the
// host's firewall/intrusion-prevention/root-login policy.
type Security struct {
	RunTimeout time.Duration
	// ReadFile is overridable in tests; defaults to os.ReadFile.
	ReadFile func(string) ([]byte, error)
}

// NewSecurity builds the slow-tier security collector.
func NewSecurity() *Security {
	return &Security{RunTimeout: 10 * time.Second, ReadFile: os.ReadFile}
}

func (c *Security) Name() string { return "security" }
func (c *Security) Tier() Tier   { return TierSlow }

func (c *Security) Collect(ctx context.Context, deps Deps) Outcome {
	now := deps.nowOrDefault()
	ts := float64(now.Unix())

	sshIntrusions := 0
	if raw, err := c.ReadFile(authLogPath); err == nil {
		result := parser.ParseAuthLog(string(raw), now)
		failed := append([]model.LoginCount(nil), result.Failed...)
		sort.Slice(failed, func(i, j int) bool { return failed[i].Count > failed[j].Count })
		for _, f := range failed {
			sshIntrusions += f.Count
		}
		if len(failed) > TopAttackersTracked {
			failed = failed[:TopAttackersTracked]
		}
		candidates := make([]AttackerCandidate, 0, len(failed))
		for _, f := range failed {
			candidates = append(candidates, AttackerCandidate{IP: f.IP, Count: f.Count})
		}
		if payload, err := json.Marshal(candidates); err == nil {
			_ = deps.Store.PutSitrepCache(ctx, model.SitrepCacheEntry{
				Key:      TopAttackersCacheKey,
				Payload:  string(payload),
				CachedAt: ts,
			})
		}
	}
	// auth.log missing or unreadable is not fatal: it degrades only
	// the ssh_intrusions_24h field, the rest of the row still means
	// something.

	ssRes, err := deps.Runner.Run(ctx, c.RunTimeout, "ss", "-tlnp")
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	if ssRes.Outcome != model.RunOK {
		return Outcome{State: model.StateDegraded, Detail: "ss -tlnp unavailable: " + ssRes.Outcome.String()}
	}
	listening := parser.ParseListeningPorts(ssRes.Stdout)

	ufwRes, _ := deps.Runner.Run(ctx, c.RunTimeout, "ufw", "status")
	fail2banRes, _ := deps.Runner.Run(ctx, c.RunTimeout, "systemctl", "is-active", "fail2ban")
	ufwActive := ufwRes != nil && ufwRes.Outcome == model.RunOK && parser.UFWActive(ufwRes.Stdout)
	fail2banActive := fail2banRes != nil && fail2banRes.Outcome == model.RunOK && parser.Fail2banActive(fail2banRes.Stdout)

	rootLoginEnabled := false
	if raw, err := c.ReadFile(sshdConfigPath); err == nil {
		rootLoginEnabled = parser.RootLoginEnabled(string(raw))
	}

	portRows := make([]model.PortScan, 0, len(listening))
	for _, p := range listening {
		portRows = append(portRows, model.PortScan{
			Timestamp: ts,
			Port:      p.Port,
			Service:   p.Service,
			State:     "LISTEN",
		})
	}
	if err := deps.Store.WritePortScans(ctx, portRows); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}

	m := model.SecurityMetrics{
		Timestamp:        ts,
		SSHIntrusions24h: sshIntrusions,
		PortsOpen:        len(portRows),
		UFWActive:        ufwActive,
		Fail2banActive:   fail2banActive,
		RootLoginEnabled: rootLoginEnabled,
	}
	if err := deps.Store.WriteSecurityMetrics(ctx, m); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	return Outcome{State: model.StateOK}
}
