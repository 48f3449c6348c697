package core

import (
	"math"
	"testing"
)

func TestDefaultPattern(t *testing.T) {
	p := DefaultPattern()
	if p.Len() != 17 {
		t.Fatalf("default pattern has %d intervals, want 17", p.Len())
	}
	if got := p.At(0); got != 22 {
		t.Fatalf("At(0) = %d, want 22", got)
	}
	if got := p.At(16); got != 58 {
		t.Fatalf("At(16) = %d, want 58", got)
	}
}

func TestAtClampsIndex(t *testing.T) {
	p := DefaultPattern()
	if got := p.At(99); got != 58 {
		t.Fatalf("At(99) = %d, want last interval count 58", got)
	}
	if got := p.At(-3); got != 22 {
		t.Fatalf("At(-3) = %d, want first interval count 22", got)
	}
}

func TestLookupCappedCapsIndexAtSeven(t *testing.T) {
	p := DefaultPattern()

	// Minute 119 falls in interval 7; everything later stays there.
	if got := p.LookupCapped(119); got != 32 {
		t.Fatalf("LookupCapped(119) = %d, want 32", got)
	}
	if got := p.LookupCapped(150); got != 32 {
		t.Fatalf("LookupCapped(150) = %d, want interval 7 count 32", got)
	}
	if got := p.LookupCapped(240); got != 32 {
		t.Fatalf("LookupCapped(240) = %d, want interval 7 count 32", got)
	}
}

func TestLookupCappedFallback(t *testing.T) {
	short := NewHistoricalPattern([]int{5, 6, 7, 8, 9})
	// Minute 90 is interval 6, beyond the 5 defined intervals.
	if got := short.LookupCapped(90); got != 20 {
		t.Fatalf("LookupCapped(90) on short pattern = %d, want fallback 20", got)
	}
	if got := short.LookupCapped(30); got != 7 {
		t.Fatalf("LookupCapped(30) on short pattern = %d, want 7", got)
	}
}

func TestPatternStatistics(t *testing.T) {
	p := DefaultPattern()

	if got := p.Mean(); math.Abs(got-741.0/17.0) > 1e-12 {
		t.Fatalf("Mean = %v, want %v", got, 741.0/17.0)
	}
	peak, idx := p.Peak()
	if peak != 70 || idx != 14 {
		t.Fatalf("Peak = (%d, %d), want (70, 14)", peak, idx)
	}
	if got := p.Min(); got != 22 {
		t.Fatalf("Min = %d, want 22", got)
	}
}

func TestCountsReturnsCopy(t *testing.T) {
	p := NewHistoricalPattern([]int{1, 2, 3})
	counts := p.Counts()
	counts[0] = 99
	if got := p.At(0); got != 1 {
		t.Fatalf("mutating Counts() changed the pattern: At(0) = %d", got)
	}
}

func TestIntervalLabels(t *testing.T) {
	cases := []struct {
		idx  int
		want string
	}{
		{0, "11:00"},
		{1, "11:15"},
		{4, "12:00"},
		{16, "15:00"},
	}
	for _, tc := range cases {
		if got := IntervalLabel(tc.idx); got != tc.want {
			t.Fatalf("IntervalLabel(%d) = %q, want %q", tc.idx, got, tc.want)
		}
	}

	if got := MinuteLabel(125); got != "13:05" {
		t.Fatalf("MinuteLabel(125) = %q, want \"13:05\"", got)
	}
}
