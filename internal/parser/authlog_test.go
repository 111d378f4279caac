package parser

import (
	"fmt"
	"testing"
	"time"
)

func TestParseAuthLogScenario(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	ts := now.Format("Jan _2 15:04:05")

	var raw string
	add := func(kind, ip string, n int) {
		for i := 0; i < n; i++ {
			raw += fmt.Sprintf("%s host sshd[1]: %s password for invalid user x from %s port 22 ssh2\n", ts, kind, ip)
		}
	}
	add("Failed", "45.33.32.156", 47)
	add("Failed", "104.248.168.210", 12)
	add("Failed", "91.189.42.11", 8)

	result := ParseAuthLog(raw, now)

	total := 0
	for _, f := range result.Failed {
		total += f.Count
	}
	if total != 67 {
		t.Errorf("total failed = %d, want 67", total)
	}
	if len(result.Accepted) != 0 {
		t.Errorf("expected no accepted entries, got %+v", result.Accepted)
	}
}

func TestParseAuthLogExcludesOutsideWindow(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	oldTs := now.AddDate(0, 0, -2).Format("Jan _2 15:04:05")
	raw := fmt.Sprintf("%s host sshd[1]: Failed password for invalid user x from 1.2.3.4 port 22 ssh2\n", oldTs)

	result := ParseAuthLog(raw, now)
	if len(result.Failed) != 0 {
		t.Errorf("expected entries older than 24h to be excluded, got %+v", result.Failed)
	}
}
