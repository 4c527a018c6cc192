package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	catalogmodels "hostel/internal/catalog/models"
	leasemodels "hostel/internal/lease/models"
	"hostel/internal/platform/metrics"
	"hostel/internal/reservation/models"
	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
	audit "hostel/pkg/platform/audit"
	"hostel/pkg/platform/sentinel"
	"hostel/pkg/platform/tx"
	"hostel/pkg/requestcontext"
)

var tracer = otel.Tracer("hostel/internal/reservation")

const (
	opCreate = "reservation_create"
	opUpdate = "reservation_update"
	opDelete = "reservation_delete"
)

type Store interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	Update(ctx context.Context, reservation *models.Reservation) error
	Delete(ctx context.Context, reservationID id.ReservationID) (*models.Reservation, error)
	FindByID(ctx context.Context, reservationID id.ReservationID) (*models.Reservation, error)
	ListByRoom(ctx context.Context, roomID id.RoomID) ([]*models.Reservation, error)
	ListOverlapping(ctx context.Context, roomID id.RoomID, period id.Period, exclude id.ReservationID) ([]*models.Reservation, error)
}

// RoomCatalog resolves rooms and receives the advisory reserved hint.
type RoomCatalog interface {
	GetRoom(ctx context.Context, roomID id.RoomID) (*catalogmodels.Room, error)
	RefreshReservedHint(ctx context.Context, roomID id.RoomID, reserved bool) error
}

// PresentLeases lists the leases of a room overlapping a period. It is read
// inside the room transaction, so it must be the lease store.
type PresentLeases interface {
	ListOverlapping(ctx context.Context, roomID id.RoomID, period id.Period, exclude id.LeaseID, presentOnly bool) ([]*leasemodels.LeaseContract, error)
}

// Service is the reservation ledger. Every create and update runs its
// overlap check and write inside one tx.Runner call keyed by the room, so two
// writers on the same room can never both pass the check.
type Service struct {
	reservations   Store
	rooms          RoomCatalog
	leases         PresentLeases
	tx             tx.Runner
	logger         *slog.Logger
	auditPublisher audit.Publisher
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPresentLeases rejects bookings on periods a present lease occupies.
func WithPresentLeases(leases PresentLeases) Option {
	return func(s *Service) {
		s.leases = leases
	}
}

// WithTxRunner replaces the default in-memory sharded runner.
func WithTxRunner(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

func New(reservations Store, rooms RoomCatalog, opts ...Option) *Service {
	s := &Service{reservations: reservations, rooms: rooms}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = tx.NewSharded(tx.DefaultTimeout)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Create books [start, end) on the room. Validation runs before the room is
// resolved and before any overlap check.
func (s *Service) Create(ctx context.Context, roomID id.RoomID, motiveID id.MotiveID, start, end time.Time) (*models.Reservation, error) {
	ctx, span := tracer.Start(ctx, "reservation.Create", trace.WithAttributes(
		attribute.String("room_id", roomID.String()),
	))
	defer span.End()
	began := time.Now()

	period, err := id.NewPeriod(start, end)
	if err != nil {
		return nil, err
	}
	reservation, err := models.NewReservation(id.ReservationID(uuid.New()), roomID, motiveID, period,
		requestcontext.UserID(ctx), requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.Usable {
		return nil, dErrors.New(dErrors.CodeConflict, "room is not usable")
	}

	err = s.tx.RunInTx(ctx, roomID.LockKey(), func(txCtx context.Context) error {
		if err := s.ensureNoOverlap(txCtx, roomID, period, id.ReservationID{}); err != nil {
			return err
		}
		if err := s.reservations.Create(txCtx, reservation); err != nil {
			return translateWriteErr(err, "room not found", "failed to create reservation")
		}
		return nil
	})
	s.metrics.ObserveWrite(opCreate, began)
	if err != nil {
		s.recordFailure(span, opCreate, err)
		return nil, err
	}

	s.metrics.IncrementWrite(opCreate)
	s.afterWrite(ctx, roomID, audit.ActionReservationCreated, reservation.ID, period)
	return reservation, nil
}

// Update moves a reservation to [start, end). The reservation's own row is
// excluded from the overlap check, so re-saving unchanged dates succeeds.
func (s *Service) Update(ctx context.Context, reservationID id.ReservationID, start, end time.Time) (*models.Reservation, error) {
	ctx, span := tracer.Start(ctx, "reservation.Update", trace.WithAttributes(
		attribute.String("reservation_id", reservationID.String()),
	))
	defer span.End()
	began := time.Now()

	period, err := id.NewPeriod(start, end)
	if err != nil {
		return nil, err
	}

	existing, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, wrapReservationErr(err, "failed to load reservation")
	}
	roomID := existing.RoomID
	span.SetAttributes(attribute.String("room_id", roomID.String()))

	var updated *models.Reservation
	err = s.tx.RunInTx(ctx, roomID.LockKey(), func(txCtx context.Context) error {
		// Re-read under the room lock; a concurrent delete may have won.
		current, err := s.reservations.FindByID(txCtx, reservationID)
		if err != nil {
			return wrapReservationErr(err, "failed to load reservation")
		}
		if err := s.ensureNoOverlap(txCtx, roomID, period, reservationID); err != nil {
			return err
		}
		current.Reschedule(period)
		if err := s.reservations.Update(txCtx, current); err != nil {
			return translateWriteErr(err, "reservation not found", "failed to update reservation")
		}
		updated = current
		return nil
	})
	s.metrics.ObserveWrite(opUpdate, began)
	if err != nil {
		s.recordFailure(span, opUpdate, err)
		return nil, err
	}

	s.metrics.IncrementWrite(opUpdate)
	s.afterWrite(ctx, roomID, audit.ActionReservationUpdated, reservationID, period)
	return updated, nil
}

// Delete removes the reservation; its interval is free as soon as this
// returns. Deletes do not take the room lock.
func (s *Service) Delete(ctx context.Context, reservationID id.ReservationID) error {
	ctx, span := tracer.Start(ctx, "reservation.Delete", trace.WithAttributes(
		attribute.String("reservation_id", reservationID.String()),
	))
	defer span.End()
	began := time.Now()

	deleted, err := s.reservations.Delete(ctx, reservationID)
	s.metrics.ObserveWrite(opDelete, began)
	if err != nil {
		err = wrapReservationErr(err, "failed to delete reservation")
		s.recordFailure(span, opDelete, err)
		return err
	}

	s.metrics.IncrementWrite(opDelete)
	s.afterWrite(ctx, deleted.RoomID, audit.ActionReservationDeleted, reservationID, deleted.Period())
	return nil
}

func (s *Service) Get(ctx context.Context, reservationID id.ReservationID) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, wrapReservationErr(err, "failed to load reservation")
	}
	return reservation, nil
}

// ListByRoom returns the room's reservations ordered by start date.
func (s *Service) ListByRoom(ctx context.Context, roomID id.RoomID) ([]*models.Reservation, error) {
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list reservations")
	}
	return reservations, nil
}

func (s *Service) ensureNoOverlap(ctx context.Context, roomID id.RoomID, period id.Period, exclude id.ReservationID) error {
	overlapping, err := s.reservations.ListOverlapping(ctx, roomID, period, exclude)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check overlapping reservations")
	}
	if len(overlapping) > 0 {
		return dErrors.New(dErrors.CodeConflict, "room is already reserved for an overlapping period")
	}
	if s.leases == nil {
		return nil
	}
	occupying, err := s.leases.ListOverlapping(ctx, roomID, period, id.LeaseID{}, true)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check present leases")
	}
	if len(occupying) > 0 {
		return dErrors.New(dErrors.CodeConflict, "room is occupied for an overlapping period")
	}
	return nil
}

// afterWrite runs the best-effort follow-ups of a committed write: the
// reserved hint and the audit event. Neither can fail the request.
func (s *Service) afterWrite(ctx context.Context, roomID id.RoomID, action audit.Action, reservationID id.ReservationID, period id.Period) {
	s.refreshReservedHint(ctx, roomID)

	s.logger.InfoContext(ctx, "reservation write committed",
		"action", string(action),
		"room_id", roomID.String(),
		"reservation_id", reservationID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	audit.EmitBestEffort(ctx, s.auditPublisher, s.logger, audit.Event{
		Action:    action,
		RoomID:    roomID,
		SubjectID: reservationID.String(),
		Detail:    id.FormatDate(period.Start) + "-" + id.FormatDate(period.End),
	})
}

func (s *Service) refreshReservedHint(ctx context.Context, roomID id.RoomID) {
	now := requestcontext.Now(ctx)
	reservations, err := s.reservations.ListByRoom(ctx, roomID)
	if err == nil {
		reserved := false
		for _, r := range reservations {
			if r.IsCurrentOrUpcoming(now) {
				reserved = true
				break
			}
		}
		err = s.rooms.RefreshReservedHint(ctx, roomID, reserved)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to refresh reserved hint",
			"room_id", roomID.String(),
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func (s *Service) recordFailure(span trace.Span, operation string, err error) {
	if dErrors.HasCode(err, dErrors.CodeConflict) {
		s.metrics.IncrementConflict(operation)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
}

// translateWriteErr maps a store failure inside the room transaction. A
// storage-level overlap (exclusion constraint) is the same conflict the
// in-process check reports.
func translateWriteErr(err error, notFoundMsg, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "room is already reserved for an overlapping period")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func wrapReservationErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "reservation not found")
	}
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
