package collector

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
)

// ActivityLogCacheKey is the sitrep_cache key the combined
// errors/recent activity log snapshot is persisted under.
const ActivityLogCacheKey = "activity_log"

// activityLogSnapshot is the JSON payload shape stored under
// ActivityLogCacheKey.
type activityLogSnapshot struct {
	Errors []model.LogEvent `json:"errors"`
	Recent []model.LogEvent `json:"recent"`
}

// ActivityLogLines bounds how many lines of each stream are retained
// in the persisted snapshot.
const ActivityLogLines = 50

// ActivityLog aggregates `openclaw logs --limit N` output with the
// tail of the system auth log into a combined errors/recent activity
// feed. Cron completions and OpenClaw-internal system events are
// expected to already appear in `openclaw logs` output, since
// OpenClaw aggregates its own subsystem logging; no separate command
// is run for them.
type ActivityLog struct {
	RunTimeout time.Duration
	Limit      int
	ReadFile   func(string) ([]byte, error)
}

// NewActivityLog builds the medium-tier activity log collector.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{RunTimeout: 10 * time.Second, Limit: ActivityLogLines, ReadFile: os.ReadFile}
}

func (c *ActivityLog) Name() string { return "activity_log" }
func (c *ActivityLog) Tier() Tier   { return TierMedium }

func (c *ActivityLog) Collect(ctx context.Context, deps Deps) Outcome {
	now := deps.nowOrDefault()
	ts := float64(now.Unix())

	res, err := deps.Runner.Run(ctx, c.RunTimeout, "openclaw", "logs", "--limit", strconv.Itoa(c.Limit))
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	if res.Outcome != model.RunOK {
		return Outcome{State: model.StateDegraded, Detail: "openclaw logs unavailable: " + res.Outcome.String()}
	}

	var events []model.LogEvent
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		events = append(events, parser.ClassifyLogLine("openclaw", ts, line))
	}

	if raw, err := c.ReadFile(authLogPath); err == nil {
		tail := lastLines(strings.Split(string(raw), "\n"), c.Limit)
		for _, line := range tail {
			if strings.TrimSpace(line) == "" {
				continue
			}
			events = append(events, parser.ClassifyLogLine("ssh", ts, line))
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp > events[j].Timestamp })

	var errs, recent []model.LogEvent
	for _, e := range events {
		if e.IsError {
			errs = append(errs, e)
		}
		recent = append(recent, e)
	}
	if len(errs) > c.Limit {
		errs = errs[:c.Limit]
	}
	if len(recent) > c.Limit {
		recent = recent[:c.Limit]
	}

	payload, err := json.Marshal(activityLogSnapshot{Errors: errs, Recent: recent})
	if err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	entry := model.SitrepCacheEntry{Key: ActivityLogCacheKey, Payload: string(payload), CachedAt: ts}
	if err := deps.Store.PutSitrepCache(ctx, entry); err != nil {
		return Outcome{State: model.StateFailed, Detail: err.Error()}
	}
	return Outcome{State: model.StateOK}
}

func lastLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
