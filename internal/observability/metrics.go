package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SimCollector bundles Prometheus metrics for the simulation loop and
// provides an HTTP handler to expose them.
type SimCollector struct {
	gatherer prometheus.Gatherer

	ActivePopulation prometheus.Gauge
	TargetOccupancy  prometheus.Gauge
	Capacity         prometheus.Gauge

	ArrivalsTotal   prometheus.Counter
	DeparturesTotal prometheus.Counter

	SessionDuration prometheus.Histogram
	DepartureSignal prometheus.Histogram
}

// NewSimCollector registers simulation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	population, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cafe_active_population",
		Help: "Number of clients currently connected.",
	}), "cafe_active_population")
	if err != nil {
		return nil, err
	}

	target, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cafe_target_occupancy",
		Help: "Historical target occupancy for the current interval.",
	}), "cafe_target_occupancy")
	if err != nil {
		return nil, err
	}

	capacity, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cafe_capacity",
		Help: "Configured ceiling on the active population.",
	}), "cafe_capacity")
	if err != nil {
		return nil, err
	}

	arrivals, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cafe_arrivals_total",
		Help: "Total number of admitted clients.",
	}), "cafe_arrivals_total")
	if err != nil {
		return nil, err
	}

	departures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cafe_departures_total",
		Help: "Total number of departed clients.",
	}), "cafe_departures_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cafe_session_duration_minutes",
		Help:    "Completed session durations in simulated minutes.",
		Buckets: []float64{5, 10, 20, 30, 45, 60, 90, 120, 180, 240},
	}), "cafe_session_duration_minutes")
	if err != nil {
		return nil, err
	}

	signal, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cafe_departure_signal_strength",
		Help:    "Signal strength at departure.",
		Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
	}), "cafe_departure_signal_strength")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:         gatherer,
		ActivePopulation: population,
		TargetOccupancy:  target,
		Capacity:         capacity,
		ArrivalsTotal:    arrivals,
		DeparturesTotal:  departures,
		SessionDuration:  duration,
		DepartureSignal:  signal,
	}, nil
}

// Handler exposes the collector's metrics over HTTP.
func (c *SimCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// RecordArrival updates arrival-side metrics for one admitted client.
func (c *SimCollector) RecordArrival() {
	if c == nil {
		return
	}
	c.ArrivalsTotal.Inc()
}

// RecordDeparture updates departure-side metrics for one completed session.
func (c *SimCollector) RecordDeparture(durationMinutes int, signalStrength float64) {
	if c == nil {
		return
	}
	c.DeparturesTotal.Inc()
	c.SessionDuration.Observe(float64(durationMinutes))
	c.DepartureSignal.Observe(signalStrength)
}

// SetOccupancy drives the population gauges after each step.
func (c *SimCollector) SetOccupancy(population, target, capacity int) {
	if c == nil {
		return
	}
	c.ActivePopulation.Set(float64(population))
	c.TargetOccupancy.Set(float64(target))
	c.Capacity.Set(float64(capacity))
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
