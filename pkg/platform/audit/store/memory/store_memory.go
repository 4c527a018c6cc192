package memory

import (
	"context"
	"sync"

	id "hostel/pkg/domain"
	audit "hostel/pkg/platform/audit"
)

// InMemoryStore keeps audit events indexed by room for local runs and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	byRoom map[id.RoomID][]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byRoom: make(map[id.RoomID][]int)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if !event.RoomID.IsNil() {
		s.byRoom[event.RoomID] = append(s.byRoom[event.RoomID], len(s.events)-1)
	}
	return nil
}

// Emit appends synchronously, so the store can stand in for the async
// publisher in local runs and tests.
func (s *InMemoryStore) Emit(ctx context.Context, event audit.Event) error {
	return s.Append(ctx, event)
}

func (s *InMemoryStore) ListByRoom(_ context.Context, roomID id.RoomID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.byRoom[roomID]
	out := make([]audit.Event, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.events[i])
	}
	return out, nil
}

// ListAll returns every event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.byRoom = make(map[id.RoomID][]int)
}
