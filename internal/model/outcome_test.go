package model

import "testing"

func TestParseCronStatusKnown(t *testing.T) {
	cases := map[string]CronStatus{
		"ok":      CronOK,
		"success": CronOK,
		"error":   CronError,
		"failed":  CronError,
		"running": CronRunning,
		"active":  CronRunning,
		"idle":    CronIdle,
	}
	for in, want := range cases {
		if got := ParseCronStatus(in); got != want {
			t.Errorf("ParseCronStatus(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseCronStatusUnknownIsIdle(t *testing.T) {
	if got := ParseCronStatus("banana"); got != CronIdle {
		t.Errorf("ParseCronStatus(unknown) = %v, want CronIdle", got)
	}
	if got := ParseCronStatus(""); got != CronIdle {
		t.Errorf("ParseCronStatus(empty) = %v, want CronIdle", got)
	}
}

func TestRunOutcomeString(t *testing.T) {
	cases := map[RunOutcome]string{
		RunOK:      "ok",
		RunMissing: "missing",
		RunTimeout: "timeout",
		RunNonZero: "nonzero",
		RunIOError: "io_error",
	}
	for in, want := range cases {
		if got := in.String(); got != want {
			t.Errorf("RunOutcome(%d).String() = %q, want %q", in, got, want)
		}
	}
}

func TestCacheResultString(t *testing.T) {
	if CacheFresh.String() != "fresh" || CacheStale.String() != "stale" || CacheMiss.String() != "miss" {
		t.Error("CacheResult.String() mismatch")
	}
}
