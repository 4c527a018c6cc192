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

	"hostel/internal/reservation/handler/mocks"
	"hostel/internal/reservation/models"
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
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
}

func (s *HandlerSuite) router(role string) http.Handler {
	r := chi.NewRouter()
	r.Use(testutil.CallerMiddleware(role))
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func march(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func sampleReservation() *models.Reservation {
	return &models.Reservation{
		ID:              id.ReservationID(uuid.New()),
		RoomID:          id.RoomID(uuid.New()),
		MotiveID:        id.MotiveID(uuid.New()),
		StartDate:       march(1),
		EndDate:         march(10),
		ReservationDate: march(1),
	}
}

func (s *HandlerSuite) createBody(r *models.Reservation, start, end string) map[string]string {
	return map[string]string{
		"roomId":    r.RoomID.String(),
		"motiveId":  r.MotiveID.String(),
		"startDate": start,
		"endDate":   end,
	}
}

func (s *HandlerSuite) TestCreate() {
	r := sampleReservation()

	s.Run("201 with dd/MM/yyyy dates", func() {
		s.service.EXPECT().Create(gomock.Any(), r.RoomID, r.MotiveID, march(1), march(10)).Return(r, nil)

		rr := testutil.DoRequest(s.router(auth.RoleManager),
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/reservations", s.createBody(r, "01/03/2025", "10/03/2025")))

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		got := testutil.UnmarshalResponse[reservationResponse](s.T(), rr)
		s.Equal(r.ID.String(), got.ID)
		s.Equal("01/03/2025", got.StartDate)
		s.Equal("10/03/2025", got.EndDate)
	})

	s.Run("409 on overlap", func() {
		s.service.EXPECT().Create(gomock.Any(), r.RoomID, r.MotiveID, march(5), march(15)).
			Return(nil, dErrors.New(dErrors.CodeConflict, "room is already reserved for an overlapping period"))

		rr := testutil.DoRequest(s.router(auth.RoleManager),
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/reservations", s.createBody(r, "05/03/2025", "15/03/2025")))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})

	s.Run("422 on malformed dates", func() {
		rr := testutil.DoRequest(s.router(auth.RoleManager),
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/reservations", s.createBody(r, "2025-03-01", "10/03/2025")))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
	})

	s.Run("422 when start is not before end", func() {
		s.service.EXPECT().Create(gomock.Any(), r.RoomID, r.MotiveID, march(10), march(1)).
			Return(nil, dErrors.New(dErrors.CodeValidation, "start date must be before end date"))

		rr := testutil.DoRequest(s.router(auth.RoleAdmin),
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/reservations", s.createBody(r, "10/03/2025", "01/03/2025")))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
	})

	s.Run("404 on unknown room", func() {
		s.service.EXPECT().Create(gomock.Any(), r.RoomID, r.MotiveID, march(1), march(2)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "room not found"))

		rr := testutil.DoRequest(s.router(auth.RoleAdmin),
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/reservations", s.createBody(r, "01/03/2025", "02/03/2025")))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("trainees cannot book", func() {
		rr := testutil.DoRequest(s.router(auth.RoleTrainee),
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/reservations", s.createBody(r, "01/03/2025", "02/03/2025")))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})
}

func (s *HandlerSuite) TestUpdate() {
	r := sampleReservation()
	path := "/reservations/" + r.ID.String()

	s.Run("200", func() {
		s.service.EXPECT().Update(gomock.Any(), r.ID, march(1), march(10)).Return(r, nil)

		rr := testutil.DoRequest(s.router(auth.RoleManager),
			testutil.NewJSONRequest(s.T(), http.MethodPut, path, s.createBody(r, "01/03/2025", "10/03/2025")))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("404", func() {
		s.service.EXPECT().Update(gomock.Any(), r.ID, march(1), march(10)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "reservation not found"))

		rr := testutil.DoRequest(s.router(auth.RoleManager),
			testutil.NewJSONRequest(s.T(), http.MethodPut, path, map[string]string{"startDate": "01/03/2025", "endDate": "10/03/2025"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("malformed id", func() {
		rr := testutil.DoRequest(s.router(auth.RoleManager),
			testutil.NewJSONRequest(s.T(), http.MethodPut, "/reservations/nope", s.createBody(r, "01/03/2025", "10/03/2025")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}

func (s *HandlerSuite) TestDelete() {
	reservationID := id.ReservationID(uuid.New())

	s.service.EXPECT().Delete(gomock.Any(), reservationID).Return(nil)
	rr := testutil.DoRequest(s.router(auth.RoleAdmin),
		testutil.NewRequest(s.T(), http.MethodDelete, "/reservations/"+reservationID.String()))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	s.service.EXPECT().Delete(gomock.Any(), reservationID).Return(dErrors.New(dErrors.CodeNotFound, "reservation not found"))
	rr = testutil.DoRequest(s.router(auth.RoleAdmin),
		testutil.NewRequest(s.T(), http.MethodDelete, "/reservations/"+reservationID.String()))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestReadsAllowAnyCaller() {
	r := sampleReservation()
	s.service.EXPECT().Get(gomock.Any(), r.ID).Return(r, nil)
	rr := testutil.DoRequest(s.router(auth.RoleTrainee),
		testutil.NewRequest(s.T(), http.MethodGet, "/reservations/"+r.ID.String()))
	testutil.AssertStatusOK(s.T(), rr)

	other := sampleReservation()
	other.RoomID = r.RoomID
	s.service.EXPECT().ListByRoom(gomock.Any(), r.RoomID).Return([]*models.Reservation{r, other}, nil)
	rr = testutil.DoRequest(s.router(auth.RoleTrainee),
		testutil.NewRequest(s.T(), http.MethodGet, "/rooms/"+r.RoomID.String()+"/reservations?limit=1"))
	testutil.AssertStatusOK(s.T(), rr)
	list := testutil.UnmarshalResponse[[]reservationResponse](s.T(), rr)
	s.Len(*list, 1)
}
