package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// cronLineRe matches one line of `openclaw cron list` output:
//
//	backup-db  status=ok  last_run=1700000000  next_run=1700003600  errors=0
var cronLineRe = regexp.MustCompile(`^(\S+)\s+status=(\S+)\s+last_run=([0-9.]+)\s+next_run=([0-9.]+)(?:\s+errors=(\d+))?`)

// ParseCronList extracts one CronRecord per matching line of raw.
// Unrecognized status strings are normalized to CronIdle by
// model.ParseCronStatus.
func ParseCronList(raw string) []model.CronRecord {
	var records []model.CronRecord
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := cronLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lastRun, _ := strconv.ParseFloat(m[3], 64)
		nextRun, _ := strconv.ParseFloat(m[4], 64)
		consecutiveErrors := 0
		if m[5] != "" {
			consecutiveErrors, _ = strconv.Atoi(m[5])
		}
		records = append(records, model.CronRecord{
			JobName:           m[1],
			Status:            model.ParseCronStatus(m[2]),
			LastRun:           lastRun,
			NextRun:           nextRun,
			ConsecutiveErrors: consecutiveErrors,
		})
	}
	return records
}
