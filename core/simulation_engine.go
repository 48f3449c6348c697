package core

import (
	"context"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/signalsfoundry/cafe-simulator/internal/logging"
	"github.com/signalsfoundry/cafe-simulator/internal/observability"
	"github.com/signalsfoundry/cafe-simulator/kb"
	"github.com/signalsfoundry/cafe-simulator/model"
)

// DefaultCapacity is the venue capacity before calibration adjusts it.
const DefaultCapacity = 50

// arrivalScale converts the arrival probability into the Poisson rate for
// the per-minute arrival-count draw.
const arrivalScale = 3.0

// EngineConfig configures a SimulationEngine.
type EngineConfig struct {
	// Capacity is the initial ceiling on the active population.
	// DefaultCapacity when zero; calibration normally overrides it.
	Capacity int

	// Seed initialises the single shared pseudo-random source every
	// stochastic draw flows through. Runs with equal seeds are identical.
	Seed uint64

	Logger  logging.Logger
	Metrics *observability.SimCollector
}

// SimulationEngine advances the venue population one simulated minute at a
// time. Each step admits, moves, then departs clients, in that order, and
// appends one session record per departure. The engine is the sole mutator
// of the store and of its clients.
type SimulationEngine struct {
	Store *kb.Store

	pattern     *HistoricalPattern
	probability *ProbabilityModel
	capacity    int
	status      CalibrationStatus

	clock   int // current simulated minute
	src     rand.Source
	rng     *rand.Rand
	factory *ClientFactory

	stationary MotionModel
	mobile     MotionModel

	log     logging.Logger
	metrics *observability.SimCollector

	tickListeners []func(int)
}

// NewSimulationEngine constructs an engine over the given store with the
// built-in default pattern. Call Calibrate before stepping to derive the
// pattern and capacity from observed data.
func NewSimulationEngine(store *kb.Store, cfg EngineConfig) *SimulationEngine {
	if cfg.Logger == nil {
		cfg.Logger = logging.Noop()
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}

	src := rand.NewSource(cfg.Seed)
	pattern := DefaultPattern()

	return &SimulationEngine{
		Store:       store,
		pattern:     pattern,
		probability: NewProbabilityModel(pattern, src),
		capacity:    cfg.Capacity,
		status:      CalibrationDefault,
		src:         src,
		rng:         rand.New(src),
		factory:     NewClientFactory(src),
		stationary:  NewMotionModel(model.MovementStationary, src),
		mobile:      NewMotionModel(model.MovementMobile, src),
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
	}
}

// Calibrate derives the historical pattern and capacity from an observed
// occupancy sequence and applies them to the engine. Invoked once, before
// any Step call; it never fails.
func (e *SimulationEngine) Calibrate(ctx context.Context, observed []int) CalibrationResult {
	res := Calibrate(ctx, observed, e.log)
	e.pattern = res.Pattern
	e.capacity = res.Capacity
	e.status = res.Status
	e.probability.SetPattern(res.Pattern)
	return res
}

// RegisterTickListener registers a callback invoked after every step with
// the minute that was just simulated.
func (e *SimulationEngine) RegisterTickListener(fn func(int)) {
	e.tickListeners = append(e.tickListeners, fn)
}

// Step executes one simulated minute: admit, move, depart, then advance the
// clock. Admission sees the population before this step's changes, and all
// departure draws in a step share the same pre-removal population snapshot.
func (e *SimulationEngine) Step() {
	t := e.clock

	e.admit(t)
	e.moveAll()
	e.depart(t)

	e.clock++

	e.metrics.SetOccupancy(e.Store.ActiveCount(), e.pattern.LookupCapped(t), e.capacity)
	for _, fn := range e.tickListeners {
		fn(t)
	}
}

// Run executes the given number of steps.
func (e *SimulationEngine) Run(steps int) {
	for i := 0; i < steps; i++ {
		e.Step()
	}
}

// Now returns the current simulated minute.
func (e *SimulationEngine) Now() int { return e.clock }

// Capacity returns the configured population ceiling.
func (e *SimulationEngine) Capacity() int { return e.capacity }

// Pattern returns the historical pattern in use.
func (e *SimulationEngine) Pattern() *HistoricalPattern { return e.pattern }

// Status reports whether the engine runs on the default or a calibrated
// pattern.
func (e *SimulationEngine) Status() CalibrationStatus { return e.status }

func (e *SimulationEngine) admit(t int) {
	population := e.Store.ActiveCount()
	if population >= e.capacity {
		return
	}

	lambda := e.probability.ArrivalProbability(t, population) * arrivalScale
	arrivals := 0
	if lambda > 0 {
		arrivals = int(distuv.Poisson{Lambda: lambda, Src: e.src}.Rand())
	}
	if room := e.capacity - population; arrivals > room {
		arrivals = room
	}

	for i := 0; i < arrivals; i++ {
		pos := model.Position{
			X: e.rng.Float64() * FloorMax,
			Y: e.rng.Float64() * FloorMax,
		}
		c := e.factory.New(pos, t)
		if err := e.Store.AddClient(c); err != nil {
			e.log.Error(context.Background(), "admit failed", logging.Int("id", c.ID), logging.Any("err", err))
			continue
		}
		e.metrics.RecordArrival()
	}
}

func (e *SimulationEngine) moveAll() {
	for _, c := range e.Store.ActiveClients() {
		e.motionFor(c).UpdatePosition(c)
	}
}

func (e *SimulationEngine) motionFor(c *model.Client) MotionModel {
	if c.Movement == model.MovementMobile {
		return e.mobile
	}
	return e.stationary
}

func (e *SimulationEngine) depart(t int) {
	clients := e.Store.ActiveClients()
	population := len(clients)

	// Evaluate every client against the same population and signal values
	// before removing anyone.
	var departing []*model.Client
	for _, c := range clients {
		if e.rng.Float64() < e.probability.DepartureProbability(c, t, population) {
			departing = append(departing, c)
		}
	}

	for _, c := range departing {
		rec := model.SessionRecord{
			ID:             c.ID,
			ArrivalTime:    c.ArrivalTime,
			DepartureTime:  t,
			Duration:       t - c.ArrivalTime,
			SignalStrength: c.SignalStrength,
		}
		if err := e.Store.RemoveClient(c.ID, rec); err != nil {
			e.log.Error(context.Background(), "depart failed", logging.Int("id", c.ID), logging.Any("err", err))
			continue
		}
		e.metrics.RecordDeparture(rec.Duration, rec.SignalStrength)
	}
}
