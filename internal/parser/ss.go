package parser

import (
	"net"
	"regexp"
	"strings"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// ssPeerRe extracts the peer address from a `ss -tnp` data line. The
// peer address column is whitespace-delimited and always ends in
// ":<port>".
var ssPeerRe = regexp.MustCompile(`(\S+):(\d+)\s*$`)

// ParseSSConnections parses `ss -tnp` output into per-peer-IP
// connection counts, excluding loopback and link-local addresses.
// Lines without a parseable peer column are skipped.
func ParseSSConnections(raw string) []model.ConnectionCount {
	counts := make(map[string]int)
	var order []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "State") || strings.HasPrefix(line, "Netid") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		// Peer address is conventionally the 5th column of `ss -tnp`
		// (State Recv-Q Send-Q Local Peer ...).
		peerCol := fields[4]
		m := ssPeerRe.FindStringSubmatch(peerCol)
		if m == nil {
			continue
		}
		ip := strings.Trim(m[1], "[]")
		if isLoopbackOrLinkLocal(ip) {
			continue
		}
		if _, seen := counts[ip]; !seen {
			order = append(order, ip)
		}
		counts[ip]++
	}

	result := make([]model.ConnectionCount, 0, len(order))
	for _, ip := range order {
		result = append(result, model.ConnectionCount{PeerIP: ip, Count: counts[ip]})
	}
	return result
}

func isLoopbackOrLinkLocal(ip string) bool {
	addr := net.ParseIP(ip)
	if addr == nil {
		return false
	}
	return addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast()
}
