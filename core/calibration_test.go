package core

import (
	"context"
	"math"
	"testing"
)

func TestCalibrateAcceptsNinePoints(t *testing.T) {
	observed := []int{10, 20, 30, 40, 50, 60, 70, 80, 90}
	res := Calibrate(context.Background(), observed, nil)

	if res.Status != CalibrationCalibrated {
		t.Fatalf("status = %v, want calibrated", res.Status)
	}
	if got := res.Pattern.At(0); got != 10 {
		t.Fatalf("pattern.At(0) = %d, want 10", got)
	}
	if res.Pattern.Len() != 9 {
		t.Fatalf("pattern length = %d, want 9", res.Pattern.Len())
	}
	if res.Capacity != 108 {
		t.Fatalf("capacity = %d, want 108 (= floor(90*1.2))", res.Capacity)
	}
	if res.PeakCount != 90 || res.PeakIndex != 8 {
		t.Fatalf("peak = (%d, %d), want (90, 8)", res.PeakCount, res.PeakIndex)
	}
	if math.Abs(res.MeanCount-50) > 1e-12 {
		t.Fatalf("mean = %v, want 50", res.MeanCount)
	}
}

func TestCalibrateRejectsWrongLengthSoftly(t *testing.T) {
	observed := []int{10, 20, 30, 40, 50, 60, 70, 80}
	res := Calibrate(context.Background(), observed, nil)

	if res.Status != CalibrationDefault {
		t.Fatalf("status = %v, want default", res.Status)
	}
	if res.Pattern.Len() != 17 {
		t.Fatalf("pattern length = %d, want the default 17", res.Pattern.Len())
	}
	if got := res.Pattern.At(0); got != 22 {
		t.Fatalf("pattern.At(0) = %d, want the default 22", got)
	}
	// Capacity always derives from the pattern in use: floor(70*1.2).
	if res.Capacity != 84 {
		t.Fatalf("capacity = %d, want 84", res.Capacity)
	}
}

func TestCalibrateWithNoObservedData(t *testing.T) {
	res := Calibrate(context.Background(), nil, nil)
	if res.Status != CalibrationDefault {
		t.Fatalf("status = %v, want default", res.Status)
	}
	if res.Capacity != 84 {
		t.Fatalf("capacity = %d, want 84", res.Capacity)
	}
}

func TestCalibrateIsIdempotentOnBadInput(t *testing.T) {
	first := Calibrate(context.Background(), []int{1, 2, 3}, nil)
	second := Calibrate(context.Background(), []int{1, 2, 3, 4}, nil)
	if first.Capacity != second.Capacity {
		t.Fatalf("capacity changed across degraded calibrations: %d vs %d",
			first.Capacity, second.Capacity)
	}
}
