package parser

import (
	"bufio"
	"regexp"
	"strings"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// authLogRe matches the two event shapes this parser cares about in
// syslog-style auth.log lines, e.g.:
//
//	Jan  2 03:04:05 host sshd[1234]: Accepted password for root from 1.2.3.4 port 51515 ssh2
//	Jan  2 03:04:05 host sshd[1234]: Failed password for invalid user admin from 5.6.7.8 port 51516 ssh2
var authLogRe = regexp.MustCompile(`(?i)(Accepted|Failed) \S+ for (?:invalid user )?\S+ from (\S+)`)

// authLogTimestampRe matches the syslog "Mon _2 15:04:05" prefix.
var authLogTimestampRe = regexp.MustCompile(`^[A-Z][a-z]{2}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2}`)

// ParseAuthLog scans raw auth-log text and produces accepted/failed
// login counts per source IP, restricted to entries within the
// trailing 24h of now. Lines with an unparseable timestamp are
// skipped (never counted), since the 24h window cannot be evaluated
// without one.
func ParseAuthLog(raw string, now time.Time) model.AuthLogResult {
	accepted := make(map[string]*model.LoginCount)
	failed := make(map[string]*model.LoginCount)
	cutoff := now.Add(-24 * time.Hour)

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		ts := parseSyslogTimestamp(line, now)
		if ts.IsZero() || ts.Before(cutoff) {
			continue
		}
		m := authLogRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ip := m[2]
		bucket := failed
		if strings.EqualFold(m[1], "Accepted") {
			bucket = accepted
		}
		entry, ok := bucket[ip]
		if !ok {
			entry = &model.LoginCount{IP: ip}
			bucket[ip] = entry
		}
		entry.Count++
		secs := float64(ts.Unix())
		if secs > entry.LastSeen {
			entry.LastSeen = secs
		}
	}

	return model.AuthLogResult{
		Accepted: flatten(accepted),
		Failed:   flatten(failed),
	}
}

func flatten(m map[string]*model.LoginCount) []model.LoginCount {
	out := make([]model.LoginCount, 0, len(m))
	for _, v := range m {
		out = append(out, *v)
	}
	return out
}

// parseSyslogTimestamp parses the "Mon _2 15:04:05" prefix of a
// syslog line, assuming the current year (syslog omits it). Returns
// the zero time if the prefix doesn't match.
func parseSyslogTimestamp(line string, now time.Time) time.Time {
	match := authLogTimestampRe.FindString(line)
	if match == "" {
		return time.Time{}
	}
	t, err := time.Parse("Jan _2 15:04:05", match)
	if err != nil {
		return time.Time{}
	}
	t = t.AddDate(now.Year(), 0, 0)
	// Syslog lines near year boundaries can appear "in the future"
	// relative to now once the current year is stamped on; treat that
	// as last year instead.
	if t.After(now) {
		t = t.AddDate(-1, 0, 0)
	}
	return t
}
