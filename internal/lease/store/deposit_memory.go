package store

import (
	"context"
	"sort"
	"sync"

	"hostel/internal/lease/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
)

type InMemoryDepositStore struct {
	mu       sync.RWMutex
	deposits map[id.DepositID]*models.Deposit
}

func NewInMemoryDepositStore() *InMemoryDepositStore {
	return &InMemoryDepositStore{deposits: make(map[id.DepositID]*models.Deposit)}
}

func cloneDeposit(d *models.Deposit) *models.Deposit {
	copied := *d
	copied.RoomIDs = append([]id.RoomID(nil), d.RoomIDs...)
	if d.BackDepositDate != nil {
		back := *d.BackDepositDate
		copied.BackDepositDate = &back
	}
	return &copied
}

func (s *InMemoryDepositStore) Create(_ context.Context, deposit *models.Deposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.deposits[deposit.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.deposits[deposit.ID] = cloneDeposit(deposit)
	return nil
}

func (s *InMemoryDepositStore) FindByID(_ context.Context, depositID id.DepositID) (*models.Deposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deposit, ok := s.deposits[depositID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneDeposit(deposit), nil
}

// ListByUser returns the user's deposits, newest deposit date first.
func (s *InMemoryDepositStore) ListByUser(_ context.Context, userID id.UserID) ([]*models.Deposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Deposit, 0)
	for _, deposit := range s.deposits {
		if deposit.UserID == userID {
			result = append(result, cloneDeposit(deposit))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DepositDate.After(result[j].DepositDate) })
	return result, nil
}

// Execute validates and mutates a deposit atomically. A validate error leaves
// the record untouched.
func (s *InMemoryDepositStore) Execute(_ context.Context, depositID id.DepositID, validate func(*models.Deposit) error, mutate func(*models.Deposit)) (*models.Deposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deposit, ok := s.deposits[depositID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := cloneDeposit(deposit)
	if err := validate(working); err != nil {
		return nil, err
	}
	mutate(working)
	s.deposits[depositID] = working
	return cloneDeposit(working), nil
}
