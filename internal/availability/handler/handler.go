package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hostel/internal/availability/models"
	catalogmodels "hostel/internal/catalog/models"
	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
	"hostel/pkg/platform/httputil"
)

// Service defines the availability reads exposed over HTTP.
type Service interface {
	ListAvailable(ctx context.Context, centerID id.CenterID) ([]models.RoomStatus, error)
	ListReserved(ctx context.Context, centerID id.CenterID) ([]models.RoomStatus, error)
	ListOccupied(ctx context.Context, centerID id.CenterID) ([]models.RoomStatus, error)
	ListWomenOnly(ctx context.Context, centerID id.CenterID) ([]models.RoomStatus, error)
	Classify(ctx context.Context, roomID id.RoomID) (*models.RoomStatus, error)
}

type Handler struct {
	availability Service
	logger       *slog.Logger
}

func New(availability Service, logger *slog.Logger) *Handler {
	return &Handler{availability: availability, logger: logger}
}

// Register mounts the read-only availability routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/rooms/available", h.listing(h.availability.ListAvailable))
	r.Get("/rooms/reserved", h.listing(h.availability.ListReserved))
	r.Get("/rooms/occupied", h.listing(h.availability.ListOccupied))
	r.Get("/rooms/women", h.listing(h.availability.ListWomenOnly))
	r.Get("/rooms/{id}/status", h.handleStatus)
}

type roomStatusResponse struct {
	*catalogmodels.Room
	FloorNumber int    `json:"floorNumber"`
	WomenOnly   bool   `json:"womenOnly"`
	Status      string `json:"status"`
}

func toResponse(rs models.RoomStatus) roomStatusResponse {
	return roomStatusResponse{
		Room:        rs.Room,
		FloorNumber: rs.FloorNumber,
		WomenOnly:   rs.WomenOnly,
		Status:      string(rs.Status),
	}
}

func (h *Handler) listing(list func(context.Context, id.CenterID) ([]models.RoomStatus, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		raw := strings.TrimSpace(r.URL.Query().Get("center"))
		if raw == "" {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "center query parameter is required"))
			return
		}
		centerID, err := id.ParseCenterID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		page, err := httputil.ParsePage(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		statuses, err := list(ctx, centerID)
		if err != nil {
			httputil.WriteServiceError(ctx, w, h.logger, "failed to list rooms", err)
			return
		}
		window := httputil.Paginate(statuses, page)
		out := make([]roomStatusResponse, 0, len(window))
		for _, rs := range window {
			out = append(out, toResponse(rs))
		}
		httputil.WriteJSON(w, http.StatusOK, out)
	}
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roomID, err := id.ParseRoomID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	status, err := h.availability.Classify(ctx, roomID)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to classify room", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(*status))
}
