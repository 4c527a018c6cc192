package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"hostel/internal/catalog/handler/mocks"
	"hostel/internal/catalog/models"
	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
	"hostel/pkg/platform/middleware/auth"
	"hostel/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
}

func (s *HandlerSuite) router(role string) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Use(testutil.CallerMiddleware(role))
	New(s.service, logger).Register(r)
	return r
}

func sampleRoom(centerID id.CenterID) *models.Room {
	return &models.Room{
		ID:        id.RoomID(uuid.New()),
		FloorID:   id.FloorID(uuid.New()),
		CenterID:  centerID,
		Number:    "101",
		Usable:    true,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerSuite) TestGetRoomByNumber() {
	centerID := id.CenterID(uuid.New())
	room := sampleRoom(centerID)

	s.Run("found", func() {
		s.service.EXPECT().GetRoomByNumberAndCenter(gomock.Any(), "101", centerID).Return(room, nil)

		rr := testutil.DoRequest(s.router(auth.RoleTrainee),
			testutil.NewRequest(s.T(), http.MethodGet, "/rooms/"+centerID.String()+"/101"))

		testutil.AssertStatusOK(s.T(), rr)
		got := testutil.UnmarshalResponse[models.Room](s.T(), rr)
		s.Equal(room.ID, got.ID)
		s.Equal("101", got.Number)
	})

	s.Run("unknown room", func() {
		s.service.EXPECT().GetRoomByNumberAndCenter(gomock.Any(), "999", centerID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "room not found"))

		rr := testutil.DoRequest(s.router(auth.RoleTrainee),
			testutil.NewRequest(s.T(), http.MethodGet, "/rooms/"+centerID.String()+"/999"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("malformed center id", func() {
		rr := testutil.DoRequest(s.router(auth.RoleTrainee),
			testutil.NewRequest(s.T(), http.MethodGet, "/rooms/not-a-uuid/101"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}

func (s *HandlerSuite) TestCatalogWritesAreAdminOnly() {
	body := map[string]any{"value": false}
	path := "/rooms/" + uuid.NewString() + "/usable"

	for _, role := range []string{auth.RoleManager, auth.RoleTrainee} {
		rr := testutil.DoRequest(s.router(role), testutil.NewJSONRequest(s.T(), http.MethodPatch, path, body))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	}
}

func (s *HandlerSuite) TestSetUsable() {
	room := sampleRoom(id.CenterID(uuid.New()))
	room.Usable = false
	s.service.EXPECT().SetUsable(gomock.Any(), room.ID, false).Return(room, nil)

	rr := testutil.DoRequest(s.router(auth.RoleAdmin),
		testutil.NewJSONRequest(s.T(), http.MethodPatch, "/rooms/"+room.ID.String()+"/usable", map[string]any{"value": false}))

	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "usable", false)
}

func (s *HandlerSuite) TestSetUsableRequiresValue() {
	rr := testutil.DoRequest(s.router(auth.RoleAdmin),
		testutil.NewJSONRequest(s.T(), http.MethodPatch, "/rooms/"+uuid.NewString()+"/usable", map[string]any{}))

	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
}

func (s *HandlerSuite) TestCreateFloor() {
	centerID := id.CenterID(uuid.New())
	floor := &models.Floor{ID: id.FloorID(uuid.New()), CenterID: centerID, Number: 2, WomenOnly: true}
	s.service.EXPECT().CreateFloor(gomock.Any(), centerID, 2, true).Return(floor, nil)

	rr := testutil.DoRequest(s.router(auth.RoleAdmin), testutil.NewJSONRequest(s.T(), http.MethodPost, "/floors", map[string]any{
		"centerId":  centerID.String(),
		"number":    2,
		"womenOnly": true,
	}))

	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	testutil.AssertJSONContains(s.T(), rr, "womenOnly", true)
}

func (s *HandlerSuite) TestCreateRoom() {
	floorID := id.FloorID(uuid.New())

	s.Run("created", func() {
		room := sampleRoom(id.CenterID(uuid.New()))
		s.service.EXPECT().CreateRoom(gomock.Any(), floorID, "101", "K1", "").Return(room, nil)

		rr := testutil.DoRequest(s.router(auth.RoleAdmin), testutil.NewJSONRequest(s.T(), http.MethodPost, "/rooms", map[string]any{
			"floorId":   floorID.String(),
			"number":    "101",
			"keyNumber": "K1",
		}))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	})

	s.Run("duplicate number", func() {
		s.service.EXPECT().CreateRoom(gomock.Any(), floorID, "101", "", "").
			Return(nil, dErrors.New(dErrors.CodeConflict, "room number already exists in this center"))

		rr := testutil.DoRequest(s.router(auth.RoleAdmin), testutil.NewJSONRequest(s.T(), http.MethodPost, "/rooms", map[string]any{
			"floorId": floorID.String(),
			"number":  "101",
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})

	s.Run("unknown field", func() {
		rr := testutil.DoRequest(s.router(auth.RoleAdmin), testutil.NewJSONRequest(s.T(), http.MethodPost, "/rooms", map[string]any{
			"floorId": floorID.String(),
			"number":  "101",
			"color":   "blue",
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) TestSetWomenOnly() {
	floor := &models.Floor{ID: id.FloorID(uuid.New()), CenterID: id.CenterID(uuid.New()), Number: 3, WomenOnly: true}
	s.service.EXPECT().SetWomenOnly(gomock.Any(), floor.ID, true).Return(floor, nil)

	rr := testutil.DoRequest(s.router(auth.RoleAdmin),
		testutil.NewJSONRequest(s.T(), http.MethodPatch, "/floors/"+floor.ID.String()+"/women-only", map[string]any{"value": true}))

	testutil.AssertStatusOK(s.T(), rr)
}
