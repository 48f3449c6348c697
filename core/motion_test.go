package core

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/signalsfoundry/cafe-simulator/model"
)

func TestStationaryMotionModel_NoChange(t *testing.T) {
	m := &StationaryMotionModel{}
	c := &model.Client{
		Position:       model.Position{X: 1, Y: 2},
		SignalStrength: SignalStrength(model.Position{X: 1, Y: 2}),
	}
	before := *c

	for i := 0; i < 10; i++ {
		m.UpdatePosition(c)
	}
	if *c != before {
		t.Fatalf("stationary motion changed the client: %#v", c)
	}
}

func TestRandomWalkStaysOnFloor(t *testing.T) {
	m := NewRandomWalkMotionModel(rand.NewSource(1))
	c := &model.Client{
		Position:       model.Position{X: 0, Y: 0},
		Movement:       model.MovementMobile,
		SignalStrength: SignalStrength(model.Position{X: 0, Y: 0}),
	}

	for i := 0; i < 2000; i++ {
		m.UpdatePosition(c)
		p := c.Position
		if p.X < FloorMin || p.X > FloorMax || p.Y < FloorMin || p.Y > FloorMax {
			t.Fatalf("step %d left the floor: %#v", i, p)
		}
		if c.SignalStrength < 0.1 || c.SignalStrength > 1.0 {
			t.Fatalf("step %d signal out of range: %v", i, c.SignalStrength)
		}
	}
}

func TestRandomWalkEventuallyMoves(t *testing.T) {
	m := NewRandomWalkMotionModel(rand.NewSource(2))
	start := model.Position{X: 5, Y: 5}
	c := &model.Client{Position: start, SignalStrength: SignalStrength(start)}

	moved := false
	for i := 0; i < 1000 && !moved; i++ {
		m.UpdatePosition(c)
		moved = c.Position != start
	}
	if !moved {
		t.Fatalf("random walk never moved in 1000 steps")
	}
}

func TestRandomWalkKeepsSignalConsistent(t *testing.T) {
	m := NewRandomWalkMotionModel(rand.NewSource(3))
	c := &model.Client{
		Position:       model.Position{X: 2, Y: 8},
		SignalStrength: SignalStrength(model.Position{X: 2, Y: 8}),
	}

	for i := 0; i < 500; i++ {
		m.UpdatePosition(c)
		if want := SignalStrength(c.Position); c.SignalStrength != want {
			t.Fatalf("step %d signal %v inconsistent with position %#v (want %v)",
				i, c.SignalStrength, c.Position, want)
		}
	}
}

func TestNewMotionModelSelection(t *testing.T) {
	src := rand.NewSource(4)
	if _, ok := NewMotionModel(model.MovementMobile, src).(*RandomWalkMotionModel); !ok {
		t.Fatalf("mobile class should use the random walk model")
	}
	if _, ok := NewMotionModel(model.MovementStationary, src).(*StationaryMotionModel); !ok {
		t.Fatalf("stationary class should use the stationary model")
	}
}
