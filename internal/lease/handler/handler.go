package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hostel/internal/lease/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/httputil"
	"hostel/pkg/platform/middleware/auth"
	"hostel/pkg/requestcontext"
)

// Service defines the lease and deposit operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, in models.LeaseInput) (*models.LeaseContract, error)
	Close(ctx context.Context, leaseID id.LeaseID, end time.Time) (*models.LeaseContract, error)
	MarkPresent(ctx context.Context, leaseID id.LeaseID) (*models.LeaseContract, error)
	MarkSigned(ctx context.Context, leaseID id.LeaseID) (*models.LeaseContract, error)
	Get(ctx context.Context, leaseID id.LeaseID) (*models.LeaseContract, error)
	ListByRoom(ctx context.Context, roomID id.RoomID) ([]*models.LeaseContract, error)
	CreateDeposit(ctx context.Context, in models.DepositInput) (*models.Deposit, error)
	RefundDeposit(ctx context.Context, depositID id.DepositID, backDate time.Time) (*models.Deposit, error)
	GetDeposit(ctx context.Context, depositID id.DepositID) (*models.Deposit, error)
	ListDepositsByUser(ctx context.Context, userID id.UserID) ([]*models.Deposit, error)
}

type Handler struct {
	leases Service
	logger *slog.Logger
}

func New(leases Service, logger *slog.Logger) *Handler {
	return &Handler{leases: leases, logger: logger}
}

// Register mounts the lease and deposit routes. Writes require an admin or
// manager caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/leases/{id}", h.handleGet)
	r.Get("/rooms/{id}/leases", h.handleListByRoom)
	r.Get("/deposits/{id}", h.handleGetDeposit)
	r.Get("/users/{id}/deposits", h.handleListDepositsByUser)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(h.logger, auth.RoleAdmin, auth.RoleManager))
		r.Post("/leases", h.handleCreate)
		r.Post("/leases/{id}/close", h.handleClose)
		r.Post("/leases/{id}/present", h.handleMarkPresent)
		r.Post("/leases/{id}/signed", h.handleMarkSigned)
		r.Post("/deposits", h.handleCreateDeposit)
		r.Post("/deposits/{id}/refund", h.handleRefundDeposit)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[createLeaseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	lease, err := h.leases.Create(ctx, req.input)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to create lease", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toLeaseResponse(lease))
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	leaseID, err := id.ParseLeaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[closeLeaseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	lease, err := h.leases.Close(ctx, leaseID, req.end)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to close lease", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLeaseResponse(lease))
}

func (h *Handler) handleMarkPresent(w http.ResponseWriter, r *http.Request) {
	h.handleFlag(w, r, "failed to mark lease present", h.leases.MarkPresent)
}

func (h *Handler) handleMarkSigned(w http.ResponseWriter, r *http.Request) {
	h.handleFlag(w, r, "failed to mark lease signed", h.leases.MarkSigned)
}

func (h *Handler) handleFlag(w http.ResponseWriter, r *http.Request, msg string, apply func(context.Context, id.LeaseID) (*models.LeaseContract, error)) {
	ctx := r.Context()

	leaseID, err := id.ParseLeaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	lease, err := apply(ctx, leaseID)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, msg, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLeaseResponse(lease))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	leaseID, err := id.ParseLeaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	lease, err := h.leases.Get(ctx, leaseID)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to get lease", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLeaseResponse(lease))
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
	leases, err := h.leases.ListByRoom(ctx, roomID)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to list leases", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLeaseResponses(httputil.Paginate(leases, page)))
}

func (h *Handler) handleCreateDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[createDepositRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	deposit, err := h.leases.CreateDeposit(ctx, req.input)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to create deposit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toDepositResponse(deposit))
}

func (h *Handler) handleRefundDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	depositID, err := id.ParseDepositID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[refundDepositRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	deposit, err := h.leases.RefundDeposit(ctx, depositID, req.backDate)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to refund deposit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDepositResponse(deposit))
}

func (h *Handler) handleGetDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	depositID, err := id.ParseDepositID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	deposit, err := h.leases.GetDeposit(ctx, depositID)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to get deposit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDepositResponse(deposit))
}

func (h *Handler) handleListDepositsByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	deposits, err := h.leases.ListDepositsByUser(ctx, userID)
	if err != nil {
		httputil.WriteServiceError(ctx, w, h.logger, "failed to list deposits", err)
		return
	}
	out := make([]depositResponse, 0, len(deposits))
	for _, d := range deposits {
		out = append(out, toDepositResponse(d))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
