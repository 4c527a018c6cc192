package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hostel/internal/catalog/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/httputil"
	"hostel/pkg/platform/middleware/auth"
	"hostel/pkg/requestcontext"
)

// Service defines the catalog operations exposed over HTTP.
type Service interface {
	GetRoomByNumberAndCenter(ctx context.Context, number string, centerID id.CenterID) (*models.Room, error)
	SetUsable(ctx context.Context, roomID id.RoomID, usable bool) (*models.Room, error)
	CreateFloor(ctx context.Context, centerID id.CenterID, number int, womenOnly bool) (*models.Floor, error)
	SetWomenOnly(ctx context.Context, floorID id.FloorID, womenOnly bool) (*models.Floor, error)
	CreateRoom(ctx context.Context, floorID id.FloorID, number, keyNumber, badgeNumber string) (*models.Room, error)
}

// Handler serves room and floor catalog routes.
type Handler struct {
	catalog Service
	logger  *slog.Logger
}

func New(catalog Service, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// Register mounts the catalog routes. Reads need only an authenticated
// caller; writes are admin-only.
func (h *Handler) Register(r chi.Router) {
	r.Get("/rooms/{center}/{roomNumber}", h.handleGetRoomByNumber)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(h.logger, auth.RoleAdmin))
		r.Post("/floors", h.handleCreateFloor)
		r.Patch("/floors/{id}/women-only", h.handleSetWomenOnly)
		r.Post("/rooms", h.handleCreateRoom)
		r.Patch("/rooms/{id}/usable", h.handleSetUsable)
	})
}

func (h *Handler) handleGetRoomByNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	centerID, err := id.ParseCenterID(chi.URLParam(r, "center"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	room, err := h.catalog.GetRoomByNumberAndCenter(ctx, chi.URLParam(r, "roomNumber"), centerID)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to get room", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, room)
}

func (h *Handler) handleCreateFloor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[createFloorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	floor, err := h.catalog.CreateFloor(ctx, req.centerID, *req.Number, req.WomenOnly)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to create floor", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, floor)
}

func (h *Handler) handleSetWomenOnly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	floorID, err := id.ParseFloorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[flagRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	floor, err := h.catalog.SetWomenOnly(ctx, floorID, *req.Value)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to update floor", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, floor)
}

func (h *Handler) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[createRoomRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	room, err := h.catalog.CreateRoom(ctx, req.floorID, req.Number, req.KeyNumber, req.BadgeNumber)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to create room", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, room)
}

func (h *Handler) handleSetUsable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	roomID, err := id.ParseRoomID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[flagRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	room, err := h.catalog.SetUsable(ctx, roomID, *req.Value)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to update room", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, room)
}
