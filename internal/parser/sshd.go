package parser

import (
	"regexp"
	"strings"
)

var permitRootLoginRe = regexp.MustCompile(`(?i)^\s*PermitRootLogin\s+(\S+)`)

// RootLoginEnabled scans sshd_config text for an uncommented
// PermitRootLogin directive. OpenSSH defaults to "prohibit-password"
// when the directive is absent, which this treats as disabled; only
// an explicit "yes" counts as enabled.
func RootLoginEnabled(sshdConfig string) bool {
	enabled := false
	for _, line := range strings.Split(sshdConfig, "\n") {
		m := permitRootLoginRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		enabled = strings.EqualFold(m[1], "yes")
	}
	return enabled
}

// UFWActive reports whether `ufw status` output indicates the
// firewall is enabled.
func UFWActive(raw string) bool {
	return strings.Contains(raw, "Status: active")
}

// Fail2banActive reports whether `systemctl is-active fail2ban`
// printed "active".
func Fail2banActive(raw string) bool {
	return strings.TrimSpace(raw) == "active"
}
