package core

import (
	"golang.org/x/exp/rand"

	"github.com/signalsfoundry/cafe-simulator/model"
)

// MotionModel updates a client's position for one simulation step.
type MotionModel interface {
	UpdatePosition(c *model.Client)
}

// StationaryMotionModel leaves the client's position unchanged.
type StationaryMotionModel struct{}

// UpdatePosition for stationary clients does nothing.
func (m *StationaryMotionModel) UpdatePosition(c *model.Client) {
	// no-op
}

// RandomWalkMotionModel moves the client with a fixed trigger probability:
// when triggered, independent dx and dy are each drawn uniformly from
// {-StepSize, 0, +StepSize}, the position is clamped to the floor, and the
// signal strength is recomputed.
type RandomWalkMotionModel struct {
	StepProbability float64
	StepSize        float64

	rng *rand.Rand
}

// NewRandomWalkMotionModel constructs a random walk drawing from src.
func NewRandomWalkMotionModel(src rand.Source) *RandomWalkMotionModel {
	return &RandomWalkMotionModel{
		StepProbability: 0.3,
		StepSize:        0.5,
		rng:             rand.New(src),
	}
}

// UpdatePosition takes at most one step and keeps the derived signal
// strength consistent with the new position.
func (m *RandomWalkMotionModel) UpdatePosition(c *model.Client) {
	if m.rng.Float64() >= m.StepProbability {
		return
	}
	dx := float64(m.rng.Intn(3)-1) * m.StepSize
	dy := float64(m.rng.Intn(3)-1) * m.StepSize

	c.Position = ClampToFloor(model.Position{
		X: c.Position.X + dx,
		Y: c.Position.Y + dy,
	})
	c.SignalStrength = SignalStrength(c.Position)
}

// NewMotionModel chooses an appropriate MotionModel for the movement class.
// Mobile clients random-walk; everything else stays put.
func NewMotionModel(class model.MovementClass, src rand.Source) MotionModel {
	if class == model.MovementMobile {
		return NewRandomWalkMotionModel(src)
	}
	return &StationaryMotionModel{}
}
