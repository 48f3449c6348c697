package core

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/signalsfoundry/cafe-simulator/model"
)

// ProbabilityModel computes per-minute arrival and departure probabilities
// calibrated against the historical pattern. Both lookups use the
// capped-index variant of the pattern.
type ProbabilityModel struct {
	// Noise is the Gaussian noise added to the arrival probability before
	// clamping. Tests may zero Sigma to get the deterministic base value.
	Noise distuv.Normal

	pattern *HistoricalPattern
}

// NewProbabilityModel constructs a model over the given pattern, drawing
// noise from src.
func NewProbabilityModel(pattern *HistoricalPattern, src rand.Source) *ProbabilityModel {
	return &ProbabilityModel{
		Noise:   distuv.Normal{Mu: 0, Sigma: 0.05, Src: src},
		pattern: pattern,
	}
}

// SetPattern swaps the pattern the model targets. Called once, by
// calibration, before the simulation starts.
func (m *ProbabilityModel) SetPattern(pattern *HistoricalPattern) {
	m.pattern = pattern
}

// ArrivalProbability returns the probability in [0,1] that new clients
// arrive at simulated minute t given the current active population.
func (m *ProbabilityModel) ArrivalProbability(t, population int) float64 {
	target := m.pattern.LookupCapped(t)
	deficit := target - population

	base := 0.05
	if deficit > 0 {
		base = float64(deficit) * 0.1
		if base > 0.8 {
			base = 0.8
		}
	}

	// Lunch-rush multiplier. Hours are integral, so the first window only
	// matches hour 12 and the second only hour 13.
	hour := float64(openingHour + t/60)
	switch {
	case hour >= 11.5 && hour <= 12.5:
		base *= 1.5
	case hour > 12.5 && hour <= 13:
		base *= 0.7
	}

	if m.Noise.Sigma > 0 {
		base += m.Noise.Rand()
	}

	if base < 0 {
		return 0
	}
	if base > 1 {
		return 1
	}
	return base
}

// DepartureProbability returns the probability in [0,1] that the given
// client leaves at simulated minute t. The population argument is the
// pre-removal snapshot for the step; every client in a step is evaluated
// against the same snapshot.
func (m *ProbabilityModel) DepartureProbability(c *model.Client, t, population int) float64 {
	target := m.pattern.LookupCapped(t)
	surplus := population - target

	base := 0.01
	if float64(t-c.ArrivalTime) > c.SessionTarget {
		base = 0.4
	}

	if surplus > 0 {
		crowding := float64(surplus) * 0.05
		if crowding > 0.3 {
			crowding = 0.3
		}
		base += crowding
	}

	base += (1 - c.SignalStrength) * 0.05

	if base > 1 {
		return 1
	}
	return base
}
