package timectrl

import (
	"sync"
	"time"
)

// Mode describes how the TimeController advances frames.
type Mode int

const (
	// RealTime advances one frame per wall-clock tick interval.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run.
	Accelerated
)

// TimeController drives the outer frame loop and notifies registered
// listeners once per frame. The simulation itself only advances inside a
// listener that chooses to step; the controller knows nothing about
// simulation semantics.
type TimeController struct {
	mu   sync.RWMutex
	Tick time.Duration
	Mode Mode

	// frame tracks the last frame delivered to listeners.
	frame int

	listeners []func(int)
}

// NewTimeController constructs a controller.
func NewTimeController(tick time.Duration, mode Mode) *TimeController {
	return &TimeController{
		Tick: tick,
		Mode: mode,
	}
}

// Frame returns the most recently delivered frame index.
func (tc *TimeController) Frame() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.frame
}

// AddListener registers a callback invoked on every frame.
func (tc *TimeController) AddListener(fn func(int)) {
	tc.listeners = append(tc.listeners, fn)
}

// Start runs the controller for the specified number of frames in a
// separate goroutine. It returns a channel that is closed when the
// controller finishes.
func (tc *TimeController) Start(frames int) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		var ticker *time.Ticker
		if tc.Mode == RealTime {
			ticker = time.NewTicker(tc.Tick)
			defer ticker.Stop()
		}

		for frame := 0; frame < frames; frame++ {
			if ticker != nil {
				<-ticker.C
			}

			tc.mu.Lock()
			tc.frame = frame
			tc.mu.Unlock()

			for _, fn := range tc.listeners {
				fn(frame)
			}
		}
	}()
	return done
}
