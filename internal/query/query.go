package query

import (
	"context"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/store"
)

// Queries is the pure read API exposed to the renderer. It is
// stateless with respect to itself -- the store is the only source of
// truth -- so every method takes its own context and reads fresh.
type Queries struct {
	store *store.Store
}

// New wraps a store for read-only querying.
func New(s *store.Store) *Queries {
	return &Queries{store: s}
}

// RecentServerMetrics returns up to limit server_metrics rows
// newest-first within the trailing window.
func (q *Queries) RecentServerMetrics(ctx context.Context, hours float64, limit int) ([]model.ServerMetrics, error) {
	return q.store.RecentServerMetrics(ctx, hours, limit)
}

// ServerAverages are the mean of the three headline series over a
// window. Any field is nil when there is no data to average.
type ServerAverages struct {
	CPUPercent *float64
	MemUsedMB  *float64
	DiskUsedGB *float64
}

// ServerAverages computes the mean of cpu_percent, mem_used_mb, and
// disk_used_gb over the trailing `hours`.
func (q *Queries) ServerAverages(ctx context.Context, hours float64) (ServerAverages, error) {
	var out ServerAverages
	for _, f := range []struct {
		column string
		dst    **float64
	}{
		{"cpu_percent", &out.CPUPercent},
		{"mem_used_mb", &out.MemUsedMB},
		{"disk_used_gb", &out.DiskUsedGB},
	} {
		series, err := q.store.MetricSeries(ctx, f.column, hours)
		if err != nil {
			return out, err
		}
		if avg, ok := mean(series); ok {
			*f.dst = &avg
		}
	}
	return out, nil
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// TokensPerHourRate is "--" when the window has fewer than two samples
// or a monotonicity decrease was observed; otherwise it is the
// computed rate in tokens/hour.
type TokensPerHourRate struct {
	Rate  float64
	Valid bool
}

// TokensPerHour computes the tokens/hour rate for agent over window,
// per spec.md §4.7 and the reset-detection rule in §9: any decrease
// within the window invalidates the rate.
func (q *Queries) TokensPerHour(ctx context.Context, agent string, window time.Duration) (TokensPerHourRate, error) {
	samples, err := q.store.AgentTokenSamples(ctx, agent, window)
	if err != nil {
		return TokensPerHourRate{}, err
	}
	return tokensPerHourFromSamples(samples), nil
}

// tokensPerHourFromSamples implements the pure rate computation so it
// can be unit tested without a store.
func tokensPerHourFromSamples(samples [][2]float64) TokensPerHourRate {
	if len(samples) < 2 {
		return TokensPerHourRate{Valid: false}
	}
	for i := 1; i < len(samples); i++ {
		if samples[i][1] < samples[i-1][1] {
			return TokensPerHourRate{Valid: false}
		}
	}
	earliest := samples[0]
	latest := samples[len(samples)-1]
	dt := latest[0] - earliest[0]
	if dt <= 0 {
		return TokensPerHourRate{Valid: false}
	}
	rate := (latest[1] - earliest[1]) * 3600 / dt
	return TokensPerHourRate{Rate: rate, Valid: true}
}

// TotalTokensPerHour sums TokensPerHour across every agent that
// reports a valid (non-reset) rate, per spec.md §4.7.
func (q *Queries) TotalTokensPerHour(ctx context.Context, window time.Duration) (float64, error) {
	names, err := q.store.AllAgentNames(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, name := range names {
		rate, err := q.TokensPerHour(ctx, name, window)
		if err != nil {
			return 0, err
		}
		if rate.Valid {
			total += rate.Rate
		}
	}
	return total, nil
}

// Trend compares the latest sample of metric to the sample nearest
// `now - lag`.
func (q *Queries) Trend(ctx context.Context, metric string, lag time.Duration) (Trend, error) {
	samples, err := q.store.MetricSeriesWithTimestamps(ctx, metric, lag.Hours()+1)
	if err != nil {
		return TrendUnknown, err
	}
	now := float64(time.Now().Unix())
	return TrendFromSamples(samples, now, lag.Seconds()), nil
}

// Sparkline renders the server metric series for the given column as
// a width-bounded block-glyph string, oldest-first internally.
func (q *Queries) Sparkline(ctx context.Context, column string, hours float64, width int) (string, error) {
	series, err := q.store.MetricSeries(ctx, column, hours)
	if err != nil {
		return "", err
	}
	reverse(series)
	return Sparkline(series, width), nil
}

// NetworkSparkline renders active_connections as a sparkline.
func (q *Queries) NetworkSparkline(ctx context.Context, hours float64, width int) (string, error) {
	series, err := q.store.NetworkSeries(ctx, hours)
	if err != nil {
		return "", err
	}
	reverse(series)
	return Sparkline(series, width), nil
}

// NetworkAverage is the mean active_connections over the window, or
// nil when there is no data.
func (q *Queries) NetworkAverage(ctx context.Context, hours float64) (*float64, error) {
	series, err := q.store.NetworkSeries(ctx, hours)
	if err != nil {
		return nil, err
	}
	if avg, ok := mean(series); ok {
		return &avg, nil
	}
	return nil, nil
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
