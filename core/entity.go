package core

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/signalsfoundry/cafe-simulator/model"
)

// meanSessionMinutes is the mean of the exponential session-duration draw.
const meanSessionMinutes = 45.0

// stationaryShare is the probability that a new client is stationary.
const stationaryShare = 0.7

// ClientFactory creates clients with sequential ids, a stochastic session
// target, and a movement class. The simulation engine is its only caller.
type ClientFactory struct {
	nextID   int
	rng      *rand.Rand
	duration distuv.Exponential
}

// NewClientFactory constructs a factory drawing from src.
func NewClientFactory(src rand.Source) *ClientFactory {
	return &ClientFactory{
		rng: rand.New(src),
		duration: distuv.Exponential{
			Rate: 1.0 / meanSessionMinutes,
			Src:  src,
		},
	}
}

// New creates a client at pos admitted at the given simulated minute. The
// session target and movement class are drawn here, once, and the initial
// signal strength is derived from the position.
func (f *ClientFactory) New(pos model.Position, arrivalTime int) *model.Client {
	movement := model.MovementStationary
	if f.rng.Float64() >= stationaryShare {
		movement = model.MovementMobile
	}

	c := &model.Client{
		ID:             f.nextID,
		Position:       pos,
		ArrivalTime:    arrivalTime,
		SessionTarget:  f.duration.Rand(),
		Movement:       movement,
		SignalStrength: SignalStrength(pos),
	}
	f.nextID++
	return c
}
