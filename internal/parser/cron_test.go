package parser

import (
	"testing"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

func TestParseCronListNormalizesUnknownStatus(t *testing.T) {
	raw := "backup-db status=weird last_run=1700000000 next_run=1700003600 errors=2"
	got := ParseCronList(raw)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Status != model.CronIdle {
		t.Errorf("status = %v, want CronIdle for unknown input", got[0].Status)
	}
	if got[0].ConsecutiveErrors != 2 {
		t.Errorf("consecutive errors = %d, want 2", got[0].ConsecutiveErrors)
	}
}

func TestParseCronListDefaultsErrorsToZero(t *testing.T) {
	raw := "cleanup status=ok last_run=1700000000 next_run=1700003600"
	got := ParseCronList(raw)
	if len(got) != 1 || got[0].ConsecutiveErrors != 0 {
		t.Fatalf("expected 1 record with 0 errors, got %+v", got)
	}
}
