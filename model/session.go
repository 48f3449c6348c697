package model

// SessionRecord is the immutable snapshot of one completed session, written
// exactly once when a client departs.
type SessionRecord struct {
	ID            int
	ArrivalTime   int
	DepartureTime int
	Duration      int // DepartureTime - ArrivalTime

	// SignalStrength is the client's signal strength at departure.
	SignalStrength float64
}
