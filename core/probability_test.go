package core

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/signalsfoundry/cafe-simulator/model"
)

// quietModel removes the Gaussian noise so the base arrival value is exact.
func quietModel(pattern *HistoricalPattern) *ProbabilityModel {
	m := NewProbabilityModel(pattern, rand.NewSource(1))
	m.Noise.Sigma = 0
	return m
}

func TestArrivalProbabilityBaseValues(t *testing.T) {
	m := quietModel(DefaultPattern())

	// t=0: target 22, empty venue, hour 11 -> deficit capped at 0.8.
	if got := m.ArrivalProbability(0, 0); got != 0.8 {
		t.Fatalf("ArrivalProbability(0, 0) = %v, want 0.8", got)
	}

	// t=60: hour 12 applies the 1.5x lunch multiplier; 0.8*1.5 clamps to 1.
	if got := m.ArrivalProbability(60, 0); got != 1.0 {
		t.Fatalf("ArrivalProbability(60, 0) = %v, want 1.0", got)
	}

	// t=120: interval index caps at 7 (target 32), venue over target, hour
	// 13 applies the 0.7x lull multiplier to the 0.05 idle base.
	if got := m.ArrivalProbability(120, 50); math.Abs(got-0.035) > 1e-12 {
		t.Fatalf("ArrivalProbability(120, 50) = %v, want 0.035", got)
	}
}

func TestArrivalProbabilityClampedUnderExtremes(t *testing.T) {
	huge := NewProbabilityModel(NewHistoricalPattern([]int{10000}), rand.NewSource(2))
	for tMin := 0; tMin < 240; tMin++ {
		for _, pop := range []int{0, 50, 10000} {
			p := huge.ArrivalProbability(tMin, pop)
			if p < 0 || p > 1 {
				t.Fatalf("ArrivalProbability(%d, %d) = %v, want within [0,1]", tMin, pop, p)
			}
		}
	}
}

func TestDepartureProbabilityExpiredSession(t *testing.T) {
	m := quietModel(DefaultPattern())
	c := &model.Client{ArrivalTime: 0, SessionTarget: 10, SignalStrength: 1.0}

	// Past the session target, under target occupancy, perfect signal.
	if got := m.DepartureProbability(c, 20, 0); got != 0.4 {
		t.Fatalf("DepartureProbability = %v, want 0.4", got)
	}

	// Still within the session target the base drops to 0.01.
	c2 := &model.Client{ArrivalTime: 0, SessionTarget: 100, SignalStrength: 1.0}
	if got := m.DepartureProbability(c2, 20, 0); got != 0.01 {
		t.Fatalf("DepartureProbability = %v, want 0.01", got)
	}
}

func TestDepartureProbabilitySurplusCapped(t *testing.T) {
	m := quietModel(DefaultPattern())
	c := &model.Client{ArrivalTime: 0, SessionTarget: 100, SignalStrength: 1.0}

	// Surplus of 9978 clamps the crowding term at 0.3.
	got := m.DepartureProbability(c, 0, 10000)
	if math.Abs(got-0.31) > 1e-12 {
		t.Fatalf("DepartureProbability under surplus = %v, want 0.31", got)
	}
}

func TestDepartureProbabilitySignalFactor(t *testing.T) {
	m := quietModel(DefaultPattern())
	c := &model.Client{ArrivalTime: 0, SessionTarget: 100, SignalStrength: 0.1}

	got := m.DepartureProbability(c, 0, 0)
	if math.Abs(got-0.055) > 1e-12 {
		t.Fatalf("DepartureProbability with weak signal = %v, want 0.055", got)
	}
}

func TestDepartureProbabilityWithinUnitInterval(t *testing.T) {
	m := quietModel(NewHistoricalPattern([]int{1}))
	c := &model.Client{ArrivalTime: 0, SessionTarget: 1, SignalStrength: 0.1}

	for _, pop := range []int{0, 100, 10000} {
		for tMin := 0; tMin < 240; tMin += 7 {
			p := m.DepartureProbability(c, tMin, pop)
			if p < 0 || p > 1 {
				t.Fatalf("DepartureProbability(t=%d, pop=%d) = %v, want within [0,1]", tMin, pop, p)
			}
		}
	}
}

func TestSetPatternRetargets(t *testing.T) {
	m := quietModel(DefaultPattern())
	m.SetPattern(NewHistoricalPattern([]int{2, 2, 2, 2, 2, 2, 2, 2, 2}))

	// Deficit is now 2 at an empty venue: base 0.2, no multiplier at hour 11.
	if got := m.ArrivalProbability(0, 0); math.Abs(got-0.2) > 1e-12 {
		t.Fatalf("ArrivalProbability after SetPattern = %v, want 0.2", got)
	}
}
