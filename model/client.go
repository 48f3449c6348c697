package model

// MovementClass indicates how a client moves around the venue floor.
type MovementClass int

const (
	// MovementStationary clients keep the position they arrived at.
	MovementStationary MovementClass = iota
	// MovementMobile clients take random-walk steps.
	MovementMobile
)

// String returns a human-readable class name for logs and reports.
func (m MovementClass) String() string {
	switch m {
	case MovementStationary:
		return "stationary"
	case MovementMobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// Position is a point on the venue floor in metres.
type Position struct {
	X float64
	Y float64
}

// Client represents one connected wireless client.
// Clients are created by the simulation engine on arrival and converted into
// a SessionRecord on departure; nothing else creates or destroys them.
type Client struct {
	ID          int
	Position    Position
	ArrivalTime int // simulated minute of admission

	// SessionTarget is the intended session length in minutes, drawn once
	// at creation from an exponential distribution.
	SessionTarget float64

	Movement MovementClass

	// SignalStrength is derived from distance to the router and recomputed
	// whenever the position changes. Always within [0.1, 1.0].
	SignalStrength float64
}
