package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hostel/internal/reservation/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/httputil"
	"hostel/pkg/platform/middleware/auth"
	"hostel/pkg/requestcontext"
)

// Service defines the reservation ledger operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, roomID id.RoomID, motiveID id.MotiveID, start, end time.Time) (*models.Reservation, error)
	Update(ctx context.Context, reservationID id.ReservationID, start, end time.Time) (*models.Reservation, error)
	Delete(ctx context.Context, reservationID id.ReservationID) error
	Get(ctx context.Context, reservationID id.ReservationID) (*models.Reservation, error)
	ListByRoom(ctx context.Context, roomID id.RoomID) ([]*models.Reservation, error)
}

// Handler serves the reservation routes.
type Handler struct {
	reservations Service
	logger       *slog.Logger
}

func New(reservations Service, logger *slog.Logger) *Handler {
	return &Handler{reservations: reservations, logger: logger}
}

// Register mounts the reservation routes. Writes require an admin or
// manager caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reservations/{id}", h.handleGet)
	r.Get("/rooms/{id}/reservations", h.handleListByRoom)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(h.logger, auth.RoleAdmin, auth.RoleManager))
		r.Post("/reservations", h.handleCreate)
		r.Put("/reservations/{id}", h.handleUpdate)
		r.Delete("/reservations/{id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[createReservationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	reservation, err := h.reservations.Create(ctx, req.roomID, req.motiveID, req.start, req.end)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to create reservation", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(reservation))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	reservationID, err := id.ParseReservationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[updateReservationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	reservation, err := h.reservations.Update(ctx, reservationID, req.start, req.end)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to update reservation", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(reservation))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reservationID, err := id.ParseReservationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.reservations.Delete(ctx, reservationID); err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to delete reservation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reservationID, err := id.ParseReservationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reservation, err := h.reservations.Get(ctx, reservationID)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to get reservation", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(reservation))
}

func (h *Handler) handleListByRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roomID, err := id.ParseRoomID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reservations, err := h.reservations.ListByRoom(ctx, roomID)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to list reservations", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponses(httputil.Paginate(reservations, page)))
}
