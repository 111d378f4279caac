package query

import "testing"

func TestTrendMonotonicIncrease(t *testing.T) {
	// newest-first: latest at index 0
	samples := [][2]float64{
		{3600, 120},
		{1800, 110},
		{0, 100},
	}
	if got := TrendFromSamples(samples, 3600, 3600); got != TrendUp {
		t.Errorf("got %v, want TrendUp", got)
	}
}

func TestTrendMonotonicDecrease(t *testing.T) {
	samples := [][2]float64{
		{3600, 80},
		{1800, 90},
		{0, 100},
	}
	if got := TrendFromSamples(samples, 3600, 3600); got != TrendDown {
		t.Errorf("got %v, want TrendDown", got)
	}
}

func TestTrendFlatWithinThreshold(t *testing.T) {
	samples := [][2]float64{
		{3600, 101},
		{0, 100},
	}
	if got := TrendFromSamples(samples, 3600, 3600); got != TrendFlat {
		t.Errorf("got %v, want TrendFlat", got)
	}
}

func TestTrendInsufficientData(t *testing.T) {
	if got := TrendFromSamples(nil, 0, 3600); got != TrendUnknown {
		t.Errorf("got %v, want TrendUnknown", got)
	}
	if got := TrendFromSamples([][2]float64{{0, 1}}, 0, 3600); got != TrendUnknown {
		t.Errorf("got %v, want TrendUnknown", got)
	}
}
