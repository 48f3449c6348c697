package core

import (
	"math"

	"github.com/signalsfoundry/cafe-simulator/model"
)

// Venue floor bounds in metres. All positions are clamped to the square
// [FloorMin, FloorMax]² after any movement.
const (
	FloorMin = 0.0
	FloorMax = 10.0
)

// signalFloor is the minimum signal strength reported anywhere on the floor;
// signalRange is the distance over which signal decays linearly.
const (
	signalFloor = 0.1
	signalRange = 10.0
)

// RouterPosition is the fixed access-point location.
var RouterPosition = model.Position{X: 5, Y: 5}

// Distance returns the straight-line distance between two floor positions.
func Distance(a, b model.Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ClampToFloor clamps each axis of p to the venue floor bounds.
func ClampToFloor(p model.Position) model.Position {
	return model.Position{
		X: clampAxis(p.X),
		Y: clampAxis(p.Y),
	}
}

func clampAxis(v float64) float64 {
	if v < FloorMin {
		return FloorMin
	}
	if v > FloorMax {
		return FloorMax
	}
	return v
}

// SignalStrength derives the abstract connection quality at position p:
// 1.0 at the router, decaying linearly with distance, never below the floor.
func SignalStrength(p model.Position) float64 {
	s := 1.0 - Distance(p, RouterPosition)/signalRange
	if s < signalFloor {
		return signalFloor
	}
	return s
}
