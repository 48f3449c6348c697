package kb

import (
	"fmt"
	"sync"

	"github.com/signalsfoundry/cafe-simulator/model"
)

// EventType indicates what kind of change happened in the store.
type EventType int

const (
	EventClientAdmitted EventType = iota
	EventClientDeparted
)

// Event is emitted to subscribers when the active set changes.
type Event struct {
	Type   EventType
	Client model.Client
}

// Store is an in-memory, thread-safe store for the active-client set and the
// append-only session log. The simulation engine is the only mutator; the
// display and reporting layers read snapshots.
type Store struct {
	mu sync.RWMutex

	clients map[int]*model.Client
	order   []int // admission order, for stable iteration
	log     []model.SessionRecord

	subs []func(Event)
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		clients: make(map[int]*model.Client),
	}
}

// AddClient admits a client. It returns an error if the ID already exists.
func (s *Store) AddClient(c *model.Client) error {
	s.mu.Lock()
	if _, exists := s.clients[c.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("client with ID %d already active", c.ID)
	}
	// store the pointer so motion models can update position in-place
	s.clients[c.ID] = c
	s.order = append(s.order, c.ID)
	event := Event{Type: EventClientAdmitted, Client: *c}
	subs := append([]func(Event){}, s.subs...)
	s.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		if sub != nil {
			sub(event)
		}
	}
	return nil
}

// RemoveClient removes an active client and appends its session record. It
// returns an error if the ID is not active.
func (s *Store) RemoveClient(id int, rec model.SessionRecord) error {
	s.mu.Lock()
	c, ok := s.clients[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("client with ID %d not active", id)
	}
	delete(s.clients, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log = append(s.log, rec)
	event := Event{Type: EventClientDeparted, Client: *c}
	subs := append([]func(Event){}, s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		if sub != nil {
			sub(event)
		}
	}
	return nil
}

// ActiveClients returns the active clients in admission order. The pointers
// are shared with the store; only the simulation engine may mutate them.
func (s *Store) ActiveClients() []*model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*model.Client, 0, len(s.order))
	for _, id := range s.order {
		res = append(res, s.clients[id])
	}
	return res
}

// ActiveCount returns the current active population.
func (s *Store) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Snapshot returns value copies of the active clients, in admission order,
// for read-only consumers such as the display layer.
func (s *Store) Snapshot() []model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]model.Client, 0, len(s.order))
	for _, id := range s.order {
		res = append(res, *s.clients[id])
	}
	return res
}

// SessionLog returns a snapshot copy of the completed-session log.
func (s *Store) SessionLog() []model.SessionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SessionRecord(nil), s.log...)
}

// SessionCount returns the number of completed sessions.
func (s *Store) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

// Subscribe registers a callback for store events. It returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1

	// Tombstone the slot rather than splicing the slice, so indices
	// captured by other unsubscribe closures never go stale.
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx >= 0 && idx < len(s.subs) {
			s.subs[idx] = nil
		}
	}
}
