package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// listenLocalRe extracts the local port and the process name `ss
// -tlnp` reports in its trailing `users:(("name",pid=...))` column.
var listenLocalRe = regexp.MustCompile(`:(\d+)\s*$`)
var listenProcRe = regexp.MustCompile(`users:\(\("([^"]+)"`)

// ListeningPort is one row of `ss -tlnp` output.
type ListeningPort struct {
	Port    int
	Service string
}

// ParseListeningPorts parses `ss -tlnp` output into one ListeningPort
// per LISTEN line. Columns are Netid, State, Recv-Q, Send-Q,
// Local Address:Port, Peer Address:Port, Process. The process name,
// when present, stands in for the service name; otherwise Service is
// left blank.
func ParseListeningPorts(raw string) []ListeningPort {
	var out []ListeningPort
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Netid") || strings.HasPrefix(line, "State") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[1] != "LISTEN" {
			continue
		}
		localCol := fields[4]
		m := listenLocalRe.FindStringSubmatch(localCol)
		if m == nil {
			continue
		}
		port, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		service := ""
		if pm := listenProcRe.FindStringSubmatch(line); pm != nil {
			service = pm[1]
		}
		out = append(out, ListeningPort{Port: port, Service: service})
	}
	return out
}
