package collector

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/model"
	"github.com/spacetrucker2196/galacticcic/internal/parser"
	"github.com/spacetrucker2196/galacticcic/internal/runner"
)

func TestTopProcessesCollectPersistsSnapshot(t *testing.T) {
	s := newTestStore(t)
	psOutput := "USER       PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND\n" +
		"root         1 12.0  2.0 123456 45678 ?        Ss   10:00   0:05 /usr/bin/openclawd\n" +
		"root         2  8.0  1.0 123456 45678 ?        S    10:00   0:02 sshd: root\n"
	fr := &fakeRunner{results: map[string]*runner.Result{
		"ps": {Outcome: model.RunOK, Stdout: psOutput},
	}}
	c := NewTopProcesses()
	deps := Deps{Runner: fr, Store: s, Now: fixedClock(time.Unix(1700000000, 0))}

	out := c.Collect(context.Background(), deps)
	require.Equal(t, model.StateOK, out.State)

	entry, err := s.GetSitrepCache(context.Background(), TopProcessesCacheKey)
	require.NoError(t, err)

	var records []parser.ProcessRecord
	require.NoError(t, json.Unmarshal([]byte(entry.Payload), &records))
	require.Len(t, records, 2)
	require.Equal(t, "/usr/bin/openclawd", records[0].Command)
}

func TestTopProcessesDegradedWhenPsMissing(t *testing.T) {
	s := newTestStore(t)
	fr := &fakeRunner{results: map[string]*runner.Result{}}
	c := NewTopProcesses()
	deps := Deps{Runner: fr, Store: s}

	out := c.Collect(context.Background(), deps)
	require.Equal(t, model.StateDegraded, out.State)
}
