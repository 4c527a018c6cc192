package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	jwttoken "hostel/internal/jwt_token"
	"hostel/internal/platform/config"
	"hostel/pkg/platform/middleware/auth"
	"hostel/pkg/testutil"
)

const (
	signingKey = "test-signing-key"
	issuer     = "identity"
)

// AppSuite drives the composed in-memory stack over HTTP.
type AppSuite struct {
	suite.Suite
	app    *App
	tokens *jwttoken.JWTService
	center string
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupTest() {
	cfg := config.Server{
		TxTimeout:     5 * time.Second,
		JWTSigningKey: signingKey,
		JWTIssuer:     issuer,
	}
	var err error
	s.app, err = New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	s.Require().NoError(err)
	s.tokens = jwttoken.NewJWTService(signingKey, issuer)
	s.center = uuid.NewString()
}

func (s *AppSuite) TearDownTest() {
	s.app.Close()
}

func (s *AppSuite) do(role, method, path string, body any) (int, map[string]any) {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	if role != "" {
		token, err := s.tokens.IssueToken(uuid.New(), role, time.Hour)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := testutil.DoRequest(s.app.Handler, req)
	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rr.Body.String()), "{") {
		out = *testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	}
	return rr.Code, out
}

func (s *AppSuite) list(path string) []map[string]any {
	req := testutil.NewRequest(s.T(), http.MethodGet, path)
	token, err := s.tokens.IssueToken(uuid.New(), auth.RoleTrainee, time.Hour)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.app.Handler, req)
	testutil.AssertStatusOK(s.T(), rr)
	return *testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
}

func (s *AppSuite) createRoom(floorNumber int, womenOnly bool, number string) string {
	code, floor := s.do(auth.RoleAdmin, http.MethodPost, "/floors", map[string]any{
		"centerId": s.center, "number": floorNumber, "womenOnly": womenOnly,
	})
	s.Require().Equal(http.StatusCreated, code)
	code, room := s.do(auth.RoleAdmin, http.MethodPost, "/rooms", map[string]any{
		"floorId": floor["id"], "number": number,
	})
	s.Require().Equal(http.StatusCreated, code)
	return room["id"].(string)
}

func (s *AppSuite) reservation(roomID, start, end string) map[string]string {
	return map[string]string{
		"roomId": roomID, "motiveId": uuid.NewString(), "startDate": start, "endDate": end,
	}
}

func (s *AppSuite) TestRoom101OverHTTP() {
	room := s.createRoom(1, false, "101")

	code, first := s.do(auth.RoleManager, http.MethodPost, "/reservations", s.reservation(room, "01/03/2099", "10/03/2099"))
	s.Require().Equal(http.StatusCreated, code)

	code, body := s.do(auth.RoleManager, http.MethodPost, "/reservations", s.reservation(room, "05/03/2099", "15/03/2099"))
	s.Equal(http.StatusConflict, code)
	s.Equal("conflict", body["error"])

	code, _ = s.do(auth.RoleManager, http.MethodPost, "/reservations", s.reservation(room, "10/03/2099", "20/03/2099"))
	s.Equal(http.StatusCreated, code)

	code, _ = s.do(auth.RoleManager, http.MethodPost, "/reservations", s.reservation(room, "10/03/2099", "01/03/2099"))
	s.Equal(http.StatusUnprocessableEntity, code)

	reserved := s.list("/rooms/reserved?center=" + s.center)
	s.Require().Len(reserved, 1)
	s.Equal("101", reserved[0]["number"])

	code, _ = s.do(auth.RoleManager, http.MethodDelete, "/reservations/"+first["id"].(string), nil)
	s.Equal(http.StatusNoContent, code)
	code, _ = s.do(auth.RoleManager, http.MethodPost, "/reservations", s.reservation(room, "05/03/2099", "10/03/2099"))
	s.Equal(http.StatusCreated, code)
}

func (s *AppSuite) TestLeaseMakesRoomOccupied() {
	room := s.createRoom(2, true, "201")

	code, _ := s.do(auth.RoleManager, http.MethodPost, "/reservations", s.reservation(room, "01/01/2020", "01/01/2099"))
	s.Require().Equal(http.StatusCreated, code)

	code, lease := s.do(auth.RoleManager, http.MethodPost, "/leases", map[string]string{
		"userId": uuid.NewString(), "roomId": room, "rentId": uuid.NewString(), "startDate": "02/01/2020",
	})
	s.Require().Equal(http.StatusCreated, code)

	code, _ = s.do(auth.RoleManager, http.MethodPost, "/leases/"+lease["id"].(string)+"/present", nil)
	s.Require().Equal(http.StatusOK, code)

	s.Empty(s.list("/rooms/reserved?center=" + s.center), "the held reservation was consumed")
	occupied := s.list("/rooms/occupied?center=" + s.center)
	s.Require().Len(occupied, 1)
	s.Equal(true, occupied[0]["womenOnly"])
	s.Len(s.list("/rooms/women?center="+s.center), 1)

	code, _ = s.do(auth.RoleAdmin, http.MethodPatch, "/rooms/"+room+"/usable", map[string]bool{"value": false})
	s.Require().Equal(http.StatusOK, code)
	s.Empty(s.list("/rooms/occupied?center=" + s.center))
	s.Empty(s.list("/rooms/women?center=" + s.center))
}

func (s *AppSuite) TestAuthAndOperationalRoutes() {
	code, body := s.do("", http.MethodGet, "/rooms/available?center="+s.center, nil)
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("unauthorized", body["error"])

	code, _ = s.do(auth.RoleTrainee, http.MethodPost, "/floors", map[string]any{"centerId": s.center, "number": 1})
	s.Equal(http.StatusForbidden, code)

	code, body = s.do("", http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, code)
	s.Equal("ok", body["status"])

	s.createRoom(1, false, "101")
	rr := testutil.DoRequest(s.app.Handler, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Body.String(), "hostel_http_request_duration_seconds")
}
