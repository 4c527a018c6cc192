package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"hostel/internal/lease/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
)

type InMemoryLeaseStoreSuite struct {
	suite.Suite
	store *InMemoryLeaseStore
	ctx   context.Context
	room  id.RoomID
}

func TestInMemoryLeaseStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryLeaseStoreSuite))
}

func (s *InMemoryLeaseStoreSuite) SetupTest() {
	s.store = NewInMemoryLeaseStore()
	s.ctx = context.Background()
	s.room = id.RoomID(uuid.New())
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(d int) *time.Time {
	t := day(d)
	return &t
}

func (s *InMemoryLeaseStoreSuite) add(roomID id.RoomID, start int, end *time.Time, present bool) *models.LeaseContract {
	l := &models.LeaseContract{
		ID:        id.LeaseID(uuid.New()),
		UserID:    id.UserID(uuid.New()),
		RoomID:    roomID,
		RentID:    id.RentID(uuid.New()),
		StartDate: day(start),
		EndDate:   end,
		IsPresent: present,
	}
	s.Require().NoError(s.store.Create(s.ctx, l))
	return l
}

func (s *InMemoryLeaseStoreSuite) TestCreateRejectsDuplicateID() {
	l := s.add(s.room, 1, nil, false)
	err := s.store.Create(s.ctx, l)
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *InMemoryLeaseStoreSuite) TestListOverlapping() {
	open := s.add(s.room, 10, nil, true)
	bounded := s.add(s.room, 1, dayPtr(5), false)
	s.add(id.RoomID(uuid.New()), 1, nil, true)

	s.Run("open-ended lease overlaps any later period", func() {
		got, err := s.store.ListOverlapping(s.ctx, s.room, id.Period{Start: day(20), End: day(25)}, id.LeaseID{}, false)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(open.ID, got[0].ID)
	})

	s.Run("open query period reaches every later lease", func() {
		got, err := s.store.ListOverlapping(s.ctx, s.room, id.Period{Start: day(3)}, id.LeaseID{}, false)
		s.Require().NoError(err)
		s.Len(got, 2)
	})

	s.Run("touching intervals do not overlap", func() {
		got, err := s.store.ListOverlapping(s.ctx, s.room, id.Period{Start: day(5), End: day(10)}, id.LeaseID{}, false)
		s.Require().NoError(err)
		s.Empty(got)
	})

	s.Run("present only filter", func() {
		got, err := s.store.ListOverlapping(s.ctx, s.room, id.Period{Start: day(1)}, id.LeaseID{}, true)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(open.ID, got[0].ID)
	})

	s.Run("excluded lease is skipped", func() {
		got, err := s.store.ListOverlapping(s.ctx, s.room, bounded.Period(), bounded.ID, false)
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *InMemoryLeaseStoreSuite) TestListPresentAt() {
	present := s.add(s.room, 1, dayPtr(10), true)
	s.add(s.room, 10, nil, false)
	other := id.RoomID(uuid.New())
	s.add(other, 20, nil, true)

	got, err := s.store.ListPresentAt(s.ctx, []id.RoomID{s.room, other}, day(5))
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(present.ID, got[0].ID)

	got, err = s.store.ListPresentAt(s.ctx, []id.RoomID{s.room, other}, day(10))
	s.Require().NoError(err)
	s.Empty(got, "end date is exclusive and a future start is not yet occupied")
}

func (s *InMemoryLeaseStoreSuite) TestUpdateKeepsIdentityFields() {
	l := s.add(s.room, 1, nil, false)

	changed := *l
	changed.RoomID = id.RoomID(uuid.New())
	changed.EndDate = dayPtr(9)
	changed.ClosedAt = dayPtr(9)
	changed.IsSigned = true
	s.Require().NoError(s.store.Update(s.ctx, &changed))

	got, err := s.store.FindByID(s.ctx, l.ID)
	s.Require().NoError(err)
	s.Equal(s.room, got.RoomID)
	s.Equal(day(9), *got.EndDate)
	s.True(got.IsSigned)
	s.True(got.IsClosed())

	changed.ID = id.LeaseID(uuid.New())
	s.ErrorIs(s.store.Update(s.ctx, &changed), sentinel.ErrNotFound)
}

func (s *InMemoryLeaseStoreSuite) TestReturnedLeasesAreCopies() {
	l := s.add(s.room, 1, dayPtr(4), false)

	got, err := s.store.FindByID(s.ctx, l.ID)
	s.Require().NoError(err)
	*got.EndDate = day(28)

	again, err := s.store.FindByID(s.ctx, l.ID)
	s.Require().NoError(err)
	s.Equal(day(4), *again.EndDate)
}
