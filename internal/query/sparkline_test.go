package query

import (
	"testing"
	"unicode/utf8"
)

func TestSparklineLengthInvariant(t *testing.T) {
	cases := []struct {
		values []float64
		width  int
	}{
		{[]float64{1, 2, 3}, 3},
		{[]float64{1, 2, 3}, 10},
		{[]float64{1, 2, 3, 4, 5, 6}, 3},
		{[]float64{5}, 5},
	}
	for _, c := range cases {
		got := Sparkline(c.values, c.width)
		want := c.width
		if want > len(c.values) {
			want = len(c.values)
		}
		n := utf8.RuneCountInString(got)
		if n != want {
			t.Errorf("Sparkline(%v, %d) len = %d, want %d", c.values, c.width, n, want)
		}
	}
}

func TestSparklineGlyphsAreInSet(t *testing.T) {
	glyphSet := map[rune]bool{}
	for _, g := range sparkGlyphs {
		glyphSet[g] = true
	}
	got := Sparkline([]float64{1, 5, 3, 9, 2}, 5)
	for _, r := range got {
		if !glyphSet[r] {
			t.Errorf("unexpected glyph %q in sparkline output", r)
		}
	}
}

func TestSparklineFlatSeriesUsesLowestGlyph(t *testing.T) {
	got := Sparkline([]float64{4, 4, 4, 4}, 4)
	for _, r := range got {
		if r != sparkGlyphs[0] {
			t.Errorf("expected lowest glyph for flat series, got %q", r)
		}
	}
}

func TestSparklineEmptyInput(t *testing.T) {
	if got := Sparkline(nil, 5); got != "" {
		t.Errorf("Sparkline(nil) = %q, want empty", got)
	}
}
