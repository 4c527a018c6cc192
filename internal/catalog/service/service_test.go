package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"hostel/internal/catalog/store"
	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
	audit "hostel/pkg/platform/audit"
	auditmemory "hostel/pkg/platform/audit/store/memory"
	"hostel/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx    context.Context
	audit  *auditmemory.InMemoryStore
	svc    *Service
	center id.CenterID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	s.audit = auditmemory.NewInMemoryStore()
	s.svc = New(store.NewInMemoryStore(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.audit),
	)
	s.center = id.CenterID(uuid.New())
}

func (s *ServiceSuite) TestCreateRoomAndLookup() {
	floor, err := s.svc.CreateFloor(s.ctx, s.center, 1, false)
	s.Require().NoError(err)

	room, err := s.svc.CreateRoom(s.ctx, floor.ID, "101", "K101", "B101")
	s.Require().NoError(err)
	s.Equal(s.center, room.CenterID)

	byNumber, err := s.svc.GetRoomByNumberAndCenter(s.ctx, "101", s.center)
	s.Require().NoError(err)
	s.Equal(room.ID, byNumber.ID)

	_, err = s.svc.GetRoomByNumberAndCenter(s.ctx, "102", s.center)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.svc.GetRoomByNumberAndCenter(s.ctx, " ", s.center)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestCreateRoomErrors() {
	floor, err := s.svc.CreateFloor(s.ctx, s.center, 1, false)
	s.Require().NoError(err)
	_, err = s.svc.CreateRoom(s.ctx, floor.ID, "101", "", "")
	s.Require().NoError(err)

	s.Run("duplicate number in center", func() {
		_, err := s.svc.CreateRoom(s.ctx, floor.ID, "101", "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown floor", func() {
		_, err := s.svc.CreateRoom(s.ctx, id.FloorID(uuid.New()), "102", "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("blank number", func() {
		_, err := s.svc.CreateRoom(s.ctx, floor.ID, "", "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestCreateFloorDuplicate() {
	_, err := s.svc.CreateFloor(s.ctx, s.center, 2, false)
	s.Require().NoError(err)

	_, err = s.svc.CreateFloor(s.ctx, s.center, 2, true)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.svc.CreateFloor(s.ctx, s.center, -1, false)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestSetUsable() {
	floor, err := s.svc.CreateFloor(s.ctx, s.center, 1, false)
	s.Require().NoError(err)
	room, err := s.svc.CreateRoom(s.ctx, floor.ID, "101", "", "")
	s.Require().NoError(err)

	updated, err := s.svc.SetUsable(s.ctx, room.ID, false)
	s.Require().NoError(err)
	s.False(updated.Usable)

	events, err := s.audit.ListByRoom(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Require().NotEmpty(events)
	s.Equal(audit.ActionRoomUsableChanged, events[len(events)-1].Action)
	s.Equal("usable=false", events[len(events)-1].Detail)

	_, err = s.svc.SetUsable(s.ctx, id.RoomID(uuid.New()), true)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestSetWomenOnly() {
	floor, err := s.svc.CreateFloor(s.ctx, s.center, 3, false)
	s.Require().NoError(err)

	updated, err := s.svc.SetWomenOnly(s.ctx, floor.ID, true)
	s.Require().NoError(err)
	s.True(updated.WomenOnly)

	got, err := s.svc.GetFloor(s.ctx, floor.ID)
	s.Require().NoError(err)
	s.True(got.WomenOnly)

	_, err = s.svc.SetWomenOnly(s.ctx, id.FloorID(uuid.New()), true)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestRefreshReservedHint() {
	floor, err := s.svc.CreateFloor(s.ctx, s.center, 1, false)
	s.Require().NoError(err)
	room, err := s.svc.CreateRoom(s.ctx, floor.ID, "101", "", "")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.RefreshReservedHint(s.ctx, room.ID, true))
	got, err := s.svc.GetRoom(s.ctx, room.ID)
	s.Require().NoError(err)
	s.True(got.Reserved)

	err = s.svc.RefreshReservedHint(s.ctx, id.RoomID(uuid.New()), true)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetRoomsByCenter() {
	first, err := s.svc.CreateFloor(s.ctx, s.center, 1, false)
	s.Require().NoError(err)
	second, err := s.svc.CreateFloor(s.ctx, s.center, 2, false)
	s.Require().NoError(err)
	_, err = s.svc.CreateRoom(s.ctx, second.ID, "201", "", "")
	s.Require().NoError(err)
	_, err = s.svc.CreateRoom(s.ctx, first.ID, "101", "", "")
	s.Require().NoError(err)

	rooms, err := s.svc.GetRoomsByCenter(s.ctx, s.center)
	s.Require().NoError(err)
	s.Require().Len(rooms, 2)
	s.Equal("101", rooms[0].Number)
	s.Equal("201", rooms[1].Number)

	empty, err := s.svc.GetRoomsByCenter(s.ctx, id.CenterID(uuid.New()))
	s.Require().NoError(err)
	s.Empty(empty)
}
