package parser

import "testing"

func TestParseNmap(t *testing.T) {
	raw := `Starting Nmap 7.94
Nmap scan report for 45.33.32.156
Host is up.
PORT     STATE SERVICE
22/tcp   open  ssh
80/tcp   open  http
OS guess: Linux 5.X`

	got := ParseNmap("45.33.32.156", raw)
	if len(got.Ports) != 2 {
		t.Fatalf("got %d ports, want 2", len(got.Ports))
	}
	if got.Ports[0].Port != 22 || got.Ports[0].Service != "ssh" {
		t.Errorf("first port = %+v", got.Ports[0])
	}
	if got.OSGuess != "Linux 5.X" {
		t.Errorf("OSGuess = %q, want %q", got.OSGuess, "Linux 5.X")
	}
}

func TestParseNmapNoData(t *testing.T) {
	got := ParseNmap("1.2.3.4", "")
	if len(got.Ports) != 0 || got.OSGuess != "" {
		t.Errorf("expected empty result for empty input, got %+v", got)
	}
}
