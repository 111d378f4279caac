package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// agentLineRe matches one line of `openclaw agents list` output:
//
//	main (default)  model=claude-3  sessions=3  tokens=126000  storage=512Mi
var agentLineRe = regexp.MustCompile(`^(\S+?)(\s+\(default\))?\s+model=(\S+)\s+sessions=(\d+)\s+tokens=(\d+)\s+storage=(\S+)`)

// ParseAgentList extracts one AgentRecord per matching line of raw.
// Lines that don't match the expected shape are skipped rather than
// aborting the whole parse -- a single malformed agent entry should
// not blank the entire panel.
func ParseAgentList(raw string) []model.AgentRecord {
	var records []model.AgentRecord
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := agentLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sessions, _ := strconv.Atoi(m[4])
		tokens, _ := strconv.ParseInt(m[5], 10, 64)
		records = append(records, model.AgentRecord{
			Name:      m[1],
			Model:     m[3],
			Sessions:  sessions,
			Tokens:    tokens,
			Storage:   ParseSize(m[6]),
			IsDefault: strings.TrimSpace(m[2]) == "(default)",
		})
	}
	return records
}
