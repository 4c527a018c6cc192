package store

import (
	"context"
	"sort"
	"sync"

	"hostel/internal/catalog/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
)

type roomKey struct {
	center id.CenterID
	number string
}

type floorKey struct {
	center id.CenterID
	number int
}

// InMemoryStore keeps floors and rooms in maps indexed by id, with secondary
// indexes for the (center, number) uniqueness rules. Returned records are
// copies.
type InMemoryStore struct {
	mu           sync.RWMutex
	floors       map[id.FloorID]*models.Floor
	rooms        map[id.RoomID]*models.Room
	floorNumbers map[floorKey]id.FloorID
	roomNumbers  map[roomKey]id.RoomID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		floors:       make(map[id.FloorID]*models.Floor),
		rooms:        make(map[id.RoomID]*models.Room),
		floorNumbers: make(map[floorKey]id.FloorID),
		roomNumbers:  make(map[roomKey]id.RoomID),
	}
}

func (s *InMemoryStore) CreateFloor(_ context.Context, floor *models.Floor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := floorKey{center: floor.CenterID, number: floor.Number}
	if _, taken := s.floorNumbers[key]; taken {
		return sentinel.ErrAlreadyUsed
	}
	copied := *floor
	s.floors[floor.ID] = &copied
	s.floorNumbers[key] = floor.ID
	return nil
}

func (s *InMemoryStore) FindFloor(_ context.Context, floorID id.FloorID) (*models.Floor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	floor, ok := s.floors[floorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *floor
	return &copied, nil
}

func (s *InMemoryStore) ListFloorsByCenter(_ context.Context, centerID id.CenterID) ([]*models.Floor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	floors := make([]*models.Floor, 0)
	for _, floor := range s.floors {
		if floor.CenterID == centerID {
			copied := *floor
			floors = append(floors, &copied)
		}
	}
	sort.Slice(floors, func(i, j int) bool { return floors[i].Number < floors[j].Number })
	return floors, nil
}

// UpdateFloor applies mutate under the write lock. A mutate error leaves the
// stored floor untouched.
func (s *InMemoryStore) UpdateFloor(_ context.Context, floorID id.FloorID, mutate func(*models.Floor) error) (*models.Floor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	floor, ok := s.floors[floorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	updated := *floor
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	s.floors[floorID] = &updated
	result := updated
	return &result, nil
}

func (s *InMemoryStore) CreateRoom(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.floors[room.FloorID]; !ok {
		return sentinel.ErrNotFound
	}
	key := roomKey{center: room.CenterID, number: room.Number}
	if _, taken := s.roomNumbers[key]; taken {
		return sentinel.ErrAlreadyUsed
	}
	copied := *room
	s.rooms[room.ID] = &copied
	s.roomNumbers[key] = room.ID
	return nil
}

func (s *InMemoryStore) FindRoom(_ context.Context, roomID id.RoomID) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *room
	return &copied, nil
}

func (s *InMemoryStore) FindRoomByNumber(_ context.Context, centerID id.CenterID, number string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roomID, ok := s.roomNumbers[roomKey{center: centerID, number: number}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.rooms[roomID]
	return &copied, nil
}

// ListRoomsByCenter returns the center's rooms ordered by floor number, then
// room number.
func (s *InMemoryStore) ListRoomsByCenter(_ context.Context, centerID id.CenterID) ([]*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]*models.Room, 0)
	for _, room := range s.rooms {
		if room.CenterID == centerID {
			copied := *room
			rooms = append(rooms, &copied)
		}
	}
	sort.Slice(rooms, func(i, j int) bool {
		return models.RoomLess(
			s.floors[rooms[i].FloorID].Number, rooms[i].Number,
			s.floors[rooms[j].FloorID].Number, rooms[j].Number,
		)
	})
	return rooms, nil
}

func (s *InMemoryStore) UpdateRoom(_ context.Context, roomID id.RoomID, mutate func(*models.Room) error) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	updated := *room
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	s.rooms[roomID] = &updated
	result := updated
	return &result, nil
}
