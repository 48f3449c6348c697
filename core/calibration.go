package core

import (
	"context"
	"math"

	"github.com/signalsfoundry/cafe-simulator/internal/logging"
)

// calibrationPoints is the exact observed-sequence length accepted by the
// validated calibration flow.
const calibrationPoints = 9

// capacityBuffer scales the observed peak into the venue capacity.
const capacityBuffer = 1.2

// CalibrationStatus records whether the pattern in use came from the
// built-in default or an accepted observed sequence.
type CalibrationStatus int

const (
	// CalibrationDefault means the built-in pattern is in use.
	CalibrationDefault CalibrationStatus = iota
	// CalibrationCalibrated means an observed sequence replaced it.
	CalibrationCalibrated
)

// String returns a human-readable status name.
func (s CalibrationStatus) String() string {
	if s == CalibrationCalibrated {
		return "calibrated"
	}
	return "default"
}

// CalibrationResult carries the derived simulation parameters.
type CalibrationResult struct {
	Status  CalibrationStatus
	Pattern *HistoricalPattern

	// Capacity is the ceiling on the active population: ⌊peak × 1.2⌋.
	Capacity int

	MeanCount float64
	PeakCount int
	PeakIndex int
}

// Calibrate derives simulation parameters from an observed occupancy
// sequence. A sequence of exactly 9 points replaces the historical pattern;
// any other length keeps the default and logs a warning. Calibration never
// fails: mismatched input is a soft degrade, not an error.
func Calibrate(ctx context.Context, observed []int, log logging.Logger) CalibrationResult {
	if log == nil {
		log = logging.Noop()
	}

	pattern := DefaultPattern()
	status := CalibrationDefault

	switch {
	case len(observed) == calibrationPoints:
		pattern = NewHistoricalPattern(observed)
		status = CalibrationCalibrated
		log.Info(ctx, "historical pattern calibrated from observed data",
			logging.Int("points", len(observed)))
	case len(observed) > 0:
		log.Warn(ctx, "observed sequence has wrong length; keeping default pattern",
			logging.Int("points", len(observed)),
			logging.Int("want", calibrationPoints))
	}

	mean := pattern.Mean()
	peak, peakIdx := pattern.Peak()
	capacity := int(math.Floor(float64(peak) * capacityBuffer))

	log.Info(ctx, "calibration complete",
		logging.String("status", status.String()),
		logging.Float64("mean", mean),
		logging.Int("peak", peak),
		logging.Int("peak_interval", peakIdx),
		logging.Int("capacity", capacity))

	return CalibrationResult{
		Status:    status,
		Pattern:   pattern,
		Capacity:  capacity,
		MeanCount: mean,
		PeakCount: peak,
		PeakIndex: peakIdx,
	}
}
