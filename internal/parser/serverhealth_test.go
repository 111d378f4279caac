package parser

import "testing"

func TestParseFreeMemoryThresholdScenario(t *testing.T) {
	raw := "              total        used        free      shared  buff/cache   available\n" +
		"Mem:           8.0Gi       7.4Gi       200Mi        10Mi       400Mi       300Mi\n" +
		"Swap:             0B          0B          0B"

	got := ParseFree(raw)
	if !got.OK {
		t.Fatal("expected OK parse")
	}
	if got.UsedMB < 7576 || got.UsedMB > 7578 {
		t.Errorf("UsedMB = %f, want ≈7577", got.UsedMB)
	}
}

func TestParseFreeNoMemLine(t *testing.T) {
	if got := ParseFree("garbage output"); got.OK {
		t.Error("expected OK=false for unparseable input")
	}
}

func TestParseDfRootFilesystem(t *testing.T) {
	raw := "Filesystem      Size  Used Avail Use% Mounted on\n" +
		"/dev/sda1        50G   20G   28G  42% /\n" +
		"tmpfs           2.0G     0  2.0G   0% /dev/shm"

	got := ParseDf(raw)
	if !got.OK {
		t.Fatal("expected OK parse")
	}
	if got.TotalGB < 49 || got.TotalGB > 51 {
		t.Errorf("TotalGB = %f, want ≈50", got.TotalGB)
	}
}

func TestParseUptimeLoadAverage(t *testing.T) {
	raw := " 12:34:56 up 3 days,  2:14,  1 user,  load average: 0.52, 0.61, 0.59"
	got := ParseUptime(raw)
	if !got.OK {
		t.Fatal("expected OK parse")
	}
	if got.Load1 != 0.52 || got.Load5 != 0.61 || got.Load15 != 0.59 {
		t.Errorf("got %+v", got)
	}
}

func TestParseUptimeUnparseable(t *testing.T) {
	if got := ParseUptime("no load info here"); got.OK {
		t.Error("expected OK=false")
	}
}
