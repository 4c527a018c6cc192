package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"hostel/internal/reservation/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
)

// InMemoryStore holds reservations by id with a room index. It does not
// check overlaps itself; callers serialize per room through tx.Runner.
type InMemoryStore struct {
	mu           sync.RWMutex
	reservations map[id.ReservationID]*models.Reservation
	byRoom       map[id.RoomID]map[id.ReservationID]struct{}
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		reservations: make(map[id.ReservationID]*models.Reservation),
		byRoom:       make(map[id.RoomID]map[id.ReservationID]struct{}),
	}
}

func (s *InMemoryStore) Create(_ context.Context, reservation *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reservations[reservation.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	copied := *reservation
	s.reservations[reservation.ID] = &copied
	if s.byRoom[reservation.RoomID] == nil {
		s.byRoom[reservation.RoomID] = make(map[id.ReservationID]struct{})
	}
	s.byRoom[reservation.RoomID][reservation.ID] = struct{}{}
	return nil
}

// Update replaces the stored dates. The room of a reservation never changes.
func (s *InMemoryStore) Update(_ context.Context, reservation *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.reservations[reservation.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	existing.StartDate = reservation.StartDate
	existing.EndDate = reservation.EndDate
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, reservationID id.ReservationID) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.reservations[reservationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	delete(s.reservations, reservationID)
	if ids := s.byRoom[existing.RoomID]; ids != nil {
		delete(ids, reservationID)
		if len(ids) == 0 {
			delete(s.byRoom, existing.RoomID)
		}
	}
	return existing, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, reservationID id.ReservationID) (*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing, ok := s.reservations[reservationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *existing
	return &copied, nil
}

// ListByRoom returns the room's reservations ordered by start date.
func (s *InMemoryStore) ListByRoom(_ context.Context, roomID id.RoomID) ([]*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(r *models.Reservation) bool { return r.RoomID == roomID }, s.byRoom[roomID]), nil
}

// ListOverlapping returns the room's reservations overlapping period, skipping
// exclude (the zero id excludes nothing).
func (s *InMemoryStore) ListOverlapping(_ context.Context, roomID id.RoomID, period id.Period, exclude id.ReservationID) ([]*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(r *models.Reservation) bool {
		return r.ID != exclude && r.Period().Overlaps(period)
	}, s.byRoom[roomID]), nil
}

// ListEndingAfter returns reservations on any of roomIDs whose end is after t.
func (s *InMemoryStore) ListEndingAfter(_ context.Context, roomIDs []id.RoomID, t time.Time) ([]*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Reservation, 0)
	for _, roomID := range roomIDs {
		result = append(result, s.collect(func(r *models.Reservation) bool {
			return r.EndDate.After(t)
		}, s.byRoom[roomID])...)
	}
	return result, nil
}

func (s *InMemoryStore) collect(keep func(*models.Reservation) bool, ids map[id.ReservationID]struct{}) []*models.Reservation {
	result := make([]*models.Reservation, 0, len(ids))
	for reservationID := range ids {
		r := s.reservations[reservationID]
		if keep(r) {
			copied := *r
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result
}
