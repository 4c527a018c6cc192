package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"hostel/internal/lease/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
)

// InMemoryLeaseStore keeps leases by id with a room index. Overlap rules are
// the service's job; writers serialize per room through tx.Runner.
type InMemoryLeaseStore struct {
	mu     sync.RWMutex
	leases map[id.LeaseID]*models.LeaseContract
	byRoom map[id.RoomID]map[id.LeaseID]struct{}
}

func NewInMemoryLeaseStore() *InMemoryLeaseStore {
	return &InMemoryLeaseStore{
		leases: make(map[id.LeaseID]*models.LeaseContract),
		byRoom: make(map[id.RoomID]map[id.LeaseID]struct{}),
	}
}

func cloneLease(l *models.LeaseContract) *models.LeaseContract {
	copied := *l
	if l.EndDate != nil {
		end := *l.EndDate
		copied.EndDate = &end
	}
	if l.ClosedAt != nil {
		closed := *l.ClosedAt
		copied.ClosedAt = &closed
	}
	return &copied
}

func (s *InMemoryLeaseStore) Create(_ context.Context, lease *models.LeaseContract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.leases[lease.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.leases[lease.ID] = cloneLease(lease)
	if s.byRoom[lease.RoomID] == nil {
		s.byRoom[lease.RoomID] = make(map[id.LeaseID]struct{})
	}
	s.byRoom[lease.RoomID][lease.ID] = struct{}{}
	return nil
}

// Update stores the mutable lease fields: end date, flags and closing time.
func (s *InMemoryLeaseStore) Update(_ context.Context, lease *models.LeaseContract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.leases[lease.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	updated := cloneLease(existing)
	next := cloneLease(lease)
	updated.EndDate = next.EndDate
	updated.IsPresent = next.IsPresent
	updated.IsSigned = next.IsSigned
	updated.ClosedAt = next.ClosedAt
	s.leases[lease.ID] = updated
	return nil
}

func (s *InMemoryLeaseStore) FindByID(_ context.Context, leaseID id.LeaseID) (*models.LeaseContract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lease, ok := s.leases[leaseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneLease(lease), nil
}

func (s *InMemoryLeaseStore) ListByRoom(_ context.Context, roomID id.RoomID) ([]*models.LeaseContract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(s.byRoom[roomID], func(*models.LeaseContract) bool { return true }), nil
}

// ListOverlapping returns the room's leases overlapping period, skipping
// exclude. With presentOnly set only present leases are considered.
func (s *InMemoryLeaseStore) ListOverlapping(_ context.Context, roomID id.RoomID, period id.Period, exclude id.LeaseID, presentOnly bool) ([]*models.LeaseContract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(s.byRoom[roomID], func(l *models.LeaseContract) bool {
		if l.ID == exclude || (presentOnly && !l.IsPresent) {
			return false
		}
		return l.Period().Overlaps(period)
	}), nil
}

// ListPresentAt returns present leases on roomIDs whose period contains t.
func (s *InMemoryLeaseStore) ListPresentAt(_ context.Context, roomIDs []id.RoomID, t time.Time) ([]*models.LeaseContract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.LeaseContract, 0)
	for _, roomID := range roomIDs {
		result = append(result, s.collect(s.byRoom[roomID], func(l *models.LeaseContract) bool {
			return l.OccupiesAt(t)
		})...)
	}
	return result, nil
}

func (s *InMemoryLeaseStore) collect(ids map[id.LeaseID]struct{}, keep func(*models.LeaseContract) bool) []*models.LeaseContract {
	result := make([]*models.LeaseContract, 0, len(ids))
	for leaseID := range ids {
		if lease := s.leases[leaseID]; keep(lease) {
			result = append(result, cloneLease(lease))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result
}
