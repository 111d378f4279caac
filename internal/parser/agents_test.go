package parser

import "testing"

func TestParseAgentListScenario(t *testing.T) {
	raw := `main (default)  model=claude-3  sessions=3  tokens=126000  storage=512Mi
rentalops  model=claude-3  sessions=4  tokens=65000  storage=128Mi
raven  model=claude-3  sessions=5  tokens=168000  storage=256Mi`

	got := ParseAgentList(raw)
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}

	if got[0].Name != "main" || !got[0].IsDefault {
		t.Errorf("expected main to be default, got %+v", got[0])
	}
	if got[1].IsDefault || got[2].IsDefault {
		t.Errorf("only main should be default, got %+v %+v", got[1], got[2])
	}

	totalSessions := 0
	var totalTokens int64
	for _, r := range got {
		totalSessions += r.Sessions
		totalTokens += r.Tokens
	}
	if totalSessions != 12 {
		t.Errorf("total sessions = %d, want 12", totalSessions)
	}
	if totalTokens != 359000 {
		t.Errorf("total tokens = %d, want 359000", totalTokens)
	}
}

func TestParseAgentListSkipsMalformedLines(t *testing.T) {
	raw := "not a valid line\nmain model=x sessions=1 tokens=1 storage=1Ki"
	got := ParseAgentList(raw)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
}
