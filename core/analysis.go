package core

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/signalsfoundry/cafe-simulator/model"
)

// validationWindowMinutes bounds the interval reconstruction used by the
// accuracy metric: boundaries at 0, 15, ..., 105.
const validationWindowMinutes = 120

// SessionSummary aggregates the completed session log.
type SessionSummary struct {
	Sessions       int
	MeanDuration   float64
	MedianDuration float64
	MeanSignal     float64
}

// Summarize computes duration and signal statistics over the session log.
// An empty log yields the zero summary.
func Summarize(log []model.SessionRecord) SessionSummary {
	if len(log) == 0 {
		return SessionSummary{}
	}

	durations := make([]float64, 0, len(log))
	signals := make([]float64, 0, len(log))
	for _, rec := range log {
		durations = append(durations, float64(rec.Duration))
		signals = append(signals, rec.SignalStrength)
	}

	mean := stat.Mean(durations, nil)
	meanSignal := stat.Mean(signals, nil)

	sort.Float64s(durations)
	median := durations[len(durations)/2]
	if len(durations)%2 == 0 {
		// Even-length logs take the average of the two middle elements.
		median = (durations[len(durations)/2-1] + durations[len(durations)/2]) / 2
	}

	return SessionSummary{
		Sessions:       len(log),
		MeanDuration:   mean,
		MedianDuration: median,
		MeanSignal:     meanSignal,
	}
}

// ValidationReport compares simulated occupancy, reconstructed from the
// session log, against the historical target.
type ValidationReport struct {
	HistoricalMean float64
	SimulatedMean  float64

	// IntervalCounts holds, per 15-minute boundary in [0,120), the number
	// of sessions whose lifetime contains that boundary.
	IntervalCounts []int

	// Accuracy is (1 - |historical - simulated| / historical) × 100.
	// Computable is false when either mean is zero; Accuracy is then
	// meaningless and must not be reported.
	Accuracy   float64
	Computable bool
}

// Validate reconstructs per-interval occupancy from the session log and
// scores it against the historical pattern's mean. A zero denominator is
// reported as not computable rather than producing NaN or infinity.
func Validate(pattern *HistoricalPattern, log []model.SessionRecord) ValidationReport {
	var counts []int
	for boundary := 0; boundary < validationWindowMinutes; boundary += IntervalMinutes {
		n := 0
		for _, rec := range log {
			if rec.ArrivalTime <= boundary && boundary <= rec.DepartureTime {
				n++
			}
		}
		counts = append(counts, n)
	}

	simulated := make([]float64, len(counts))
	for i, n := range counts {
		simulated[i] = float64(n)
	}

	report := ValidationReport{
		HistoricalMean: pattern.Mean(),
		SimulatedMean:  stat.Mean(simulated, nil),
		IntervalCounts: counts,
	}

	if report.HistoricalMean == 0 || report.SimulatedMean == 0 {
		return report
	}

	report.Accuracy = (1 - math.Abs(report.HistoricalMean-report.SimulatedMean)/report.HistoricalMean) * 100
	report.Computable = true
	return report
}
