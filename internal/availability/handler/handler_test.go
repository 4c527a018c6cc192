package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"hostel/internal/availability/handler/mocks"
	"hostel/internal/availability/models"
	catalogmodels "hostel/internal/catalog/models"
	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
	"hostel/pkg/platform/middleware/auth"
	"hostel/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	center  id.CenterID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	s.center = id.CenterID(uuid.New())
}

func (s *HandlerSuite) router() http.Handler {
	r := chi.NewRouter()
	r.Use(testutil.CallerMiddleware(auth.RoleTrainee))
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func roomStatus(number string, status models.Status) models.RoomStatus {
	return models.RoomStatus{
		Room: &catalogmodels.Room{
			ID:     id.RoomID(uuid.New()),
			Number: number,
			Usable: true,
		},
		FloorNumber: 1,
		Status:      status,
	}
}

func (s *HandlerSuite) TestListings() {
	tests := []struct {
		path   string
		status models.Status
		expect func() *gomock.Call
	}{
		{"/rooms/available", models.StatusAvailable, func() *gomock.Call { return s.service.EXPECT().ListAvailable(gomock.Any(), s.center) }},
		{"/rooms/reserved", models.StatusReserved, func() *gomock.Call { return s.service.EXPECT().ListReserved(gomock.Any(), s.center) }},
		{"/rooms/occupied", models.StatusOccupied, func() *gomock.Call { return s.service.EXPECT().ListOccupied(gomock.Any(), s.center) }},
		{"/rooms/women", models.StatusAvailable, func() *gomock.Call { return s.service.EXPECT().ListWomenOnly(gomock.Any(), s.center) }},
	}
	for _, tt := range tests {
		s.Run(tt.path, func() {
			tt.expect().Return([]models.RoomStatus{roomStatus("101", tt.status), roomStatus("102", tt.status)}, nil)

			rr := testutil.DoRequest(s.router(),
				testutil.NewRequest(s.T(), http.MethodGet, tt.path+"?center="+s.center.String()+"&limit=1"))

			testutil.AssertStatusOK(s.T(), rr)
			got := testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
			s.Require().Len(*got, 1)
			s.Equal("101", (*got)[0]["number"])
			s.Equal(string(tt.status), (*got)[0]["status"])
		})
	}
}

func (s *HandlerSuite) TestListingRequiresCenter() {
	rr := testutil.DoRequest(s.router(), testutil.NewRequest(s.T(), http.MethodGet, "/rooms/available"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")

	rr = testutil.DoRequest(s.router(), testutil.NewRequest(s.T(), http.MethodGet, "/rooms/available?center=nope"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
}

func (s *HandlerSuite) TestStatus() {
	rs := roomStatus("7", models.StatusOccupied)
	rs.WomenOnly = true
	s.service.EXPECT().Classify(gomock.Any(), rs.Room.ID).Return(&rs, nil)

	rr := testutil.DoRequest(s.router(),
		testutil.NewRequest(s.T(), http.MethodGet, "/rooms/"+rs.Room.ID.String()+"/status"))
	testutil.AssertStatusOK(s.T(), rr)
	got := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	s.Equal("occupied", (*got)["status"])
	s.Equal(true, (*got)["womenOnly"])
	s.Equal(rs.Room.ID.String(), (*got)["id"])

	missing := id.RoomID(uuid.New())
	s.service.EXPECT().Classify(gomock.Any(), missing).Return(nil, dErrors.New(dErrors.CodeNotFound, "room not found"))
	rr = testutil.DoRequest(s.router(),
		testutil.NewRequest(s.T(), http.MethodGet, "/rooms/"+missing.String()+"/status"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}
