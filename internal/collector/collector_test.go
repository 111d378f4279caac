package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/runner"
	"github.com/spacetrucker2196/galacticcic/internal/store"
)

// fakeRunner returns canned results keyed by the invoked binary name,
// so each test only has to describe the commands it cares about.
type fakeRunner struct {
	results map[string]*runner.Result
	errs    map[string]error
}

func (f *fakeRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (*runner.Result, error) {
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	if res, ok := f.results[name]; ok {
		return res, nil
	}
	return &runner.Result{Outcome: model.RunMissing}, nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(context.Background(), dir+"/metrics.db")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
