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
	"hostel/internal/lease/models"
	"hostel/internal/platform/metrics"
	reservationmodels "hostel/internal/reservation/models"
	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
	audit "hostel/pkg/platform/audit"
	"hostel/pkg/platform/sentinel"
	"hostel/pkg/platform/tx"
	"hostel/pkg/requestcontext"
)

var tracer = otel.Tracer("hostel/internal/lease")

const (
	opCreate  = "lease_create"
	opClose   = "lease_close"
	opPresent = "lease_present"
	opSigned  = "lease_signed"
	opRefund  = "deposit_refund"
)

type LeaseStore interface {
	Create(ctx context.Context, lease *models.LeaseContract) error
	Update(ctx context.Context, lease *models.LeaseContract) error
	FindByID(ctx context.Context, leaseID id.LeaseID) (*models.LeaseContract, error)
	ListByRoom(ctx context.Context, roomID id.RoomID) ([]*models.LeaseContract, error)
	ListOverlapping(ctx context.Context, roomID id.RoomID, period id.Period, exclude id.LeaseID, presentOnly bool) ([]*models.LeaseContract, error)
}

type DepositStore interface {
	Create(ctx context.Context, deposit *models.Deposit) error
	FindByID(ctx context.Context, depositID id.DepositID) (*models.Deposit, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Deposit, error)
	Execute(ctx context.Context, depositID id.DepositID, validate func(*models.Deposit) error, mutate func(*models.Deposit)) (*models.Deposit, error)
}

// ReservationStore is the slice of the reservation ledger's storage a lease
// needs to consume the held reservation. It is called inside the room
// transaction, so it must be the store and never the reservation service.
type ReservationStore interface {
	Create(ctx context.Context, reservation *reservationmodels.Reservation) error
	FindByID(ctx context.Context, reservationID id.ReservationID) (*reservationmodels.Reservation, error)
	Delete(ctx context.Context, reservationID id.ReservationID) (*reservationmodels.Reservation, error)
	ListByRoom(ctx context.Context, roomID id.RoomID) ([]*reservationmodels.Reservation, error)
	ListOverlapping(ctx context.Context, roomID id.RoomID, period id.Period, exclude id.ReservationID) ([]*reservationmodels.Reservation, error)
}

type RoomCatalog interface {
	GetRoom(ctx context.Context, roomID id.RoomID) (*catalogmodels.Room, error)
	RefreshReservedHint(ctx context.Context, roomID id.RoomID, reserved bool) error
}

// Service runs the lease lifecycle and the deposits tied to it. Lease writes
// share the room lock key with reservation writes.
type Service struct {
	leases         LeaseStore
	deposits       DepositStore
	reservations   ReservationStore
	rooms          RoomCatalog
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

// WithTxRunner must be given the same runner as the reservation service.
func WithTxRunner(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

func New(leases LeaseStore, deposits DepositStore, reservations ReservationStore, rooms RoomCatalog, opts ...Option) *Service {
	s := &Service{
		leases:       leases,
		deposits:     deposits,
		reservations: reservations,
		rooms:        rooms,
	}
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

// Create opens a lease on the room. Within the room transaction it checks the
// lease against every other lease of the room and consumes the reservation
// held for it: the one named by in.ReservationID, or else the one containing
// the lease start. Any other reservation overlapping the lease is a conflict.
func (s *Service) Create(ctx context.Context, in models.LeaseInput) (*models.LeaseContract, error) {
	ctx, span := tracer.Start(ctx, "lease.Create", trace.WithAttributes(
		attribute.String("room_id", in.RoomID.String()),
	))
	defer span.End()
	began := time.Now()

	period, err := id.NewOpenPeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	lease, err := models.NewLease(id.LeaseID(uuid.New()), in.UserID, in.RoomID, in.RentID, period, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.Usable {
		return nil, dErrors.New(dErrors.CodeConflict, "room is not usable")
	}

	var consumed *reservationmodels.Reservation
	err = s.tx.RunInTx(ctx, in.RoomID.LockKey(), func(txCtx context.Context) error {
		if err := s.ensureNoLeaseOverlap(txCtx, in.RoomID, period, id.LeaseID{}, false); err != nil {
			return err
		}
		held, err := s.heldReservation(txCtx, in, period)
		if err != nil {
			return err
		}
		if held != nil {
			if _, err := s.reservations.Delete(txCtx, held.ID); err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					return dErrors.New(dErrors.CodeConflict, "held reservation was removed concurrently")
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to consume reservation")
			}
		}
		if err := s.leases.Create(txCtx, lease); err != nil {
			if held != nil {
				s.restoreReservation(txCtx, held)
			}
			return translateWriteErr(err, "room not found", "failed to create lease")
		}
		consumed = held
		return nil
	})
	s.metrics.ObserveWrite(opCreate, began)
	if err != nil {
		s.recordFailure(span, opCreate, err)
		return nil, err
	}

	s.metrics.IncrementWrite(opCreate)
	if consumed != nil {
		s.refreshReservedHint(ctx, in.RoomID)
		audit.EmitBestEffort(ctx, s.auditPublisher, s.logger, audit.Event{
			Action:    audit.ActionReservationDeleted,
			RoomID:    in.RoomID,
			SubjectID: consumed.ID.String(),
			Detail:    "consumed by lease " + lease.ID.String(),
		})
	}
	s.afterWrite(ctx, audit.ActionLeaseCreated, lease)
	return lease, nil
}

// restoreReservation puts back a consumed reservation when the lease insert
// fails. A SQL transaction rolls the delete back on its own.
func (s *Service) restoreReservation(ctx context.Context, held *reservationmodels.Reservation) {
	if _, inTx := tx.From(ctx); inTx {
		return
	}
	if err := s.reservations.Create(ctx, held); err != nil {
		s.logger.ErrorContext(ctx, "failed to restore consumed reservation",
			"reservation_id", held.ID.String(),
			"room_id", held.RoomID.String(),
			"error", err,
		)
	}
}

// heldReservation finds the reservation the new lease consumes and rejects
// any other reservation overlapping the lease period.
func (s *Service) heldReservation(ctx context.Context, in models.LeaseInput, period id.Period) (*reservationmodels.Reservation, error) {
	var held *reservationmodels.Reservation
	if !in.ReservationID.IsNil() {
		r, err := s.reservations.FindByID(ctx, in.ReservationID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "reservation not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reservation")
		}
		if r.RoomID != in.RoomID {
			return nil, dErrors.New(dErrors.CodeValidation, "reservation belongs to another room")
		}
		held = r
	}

	overlapping, err := s.reservations.ListOverlapping(ctx, in.RoomID, period, id.ReservationID{})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check overlapping reservations")
	}
	for _, r := range overlapping {
		switch {
		case held != nil && r.ID == held.ID:
		case held == nil && r.Period().Contains(period.Start):
			held = r
		default:
			return nil, dErrors.New(dErrors.CodeConflict, "room is reserved for an overlapping period")
		}
	}
	return held, nil
}

// Close ends the lease at end. The shortened or extended period is checked
// again against the room's other leases.
func (s *Service) Close(ctx context.Context, leaseID id.LeaseID, end time.Time) (*models.LeaseContract, error) {
	ctx, span := tracer.Start(ctx, "lease.Close", trace.WithAttributes(
		attribute.String("lease_id", leaseID.String()),
	))
	defer span.End()
	began := time.Now()

	if end.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "end date is required")
	}
	lease, err := s.mutateUnderLock(ctx, leaseID, func(txCtx context.Context, current *models.LeaseContract) (bool, error) {
		if err := current.CanClose(end); err != nil {
			return false, invariantToConflict(err)
		}
		period := id.Period{Start: current.StartDate, End: end}
		if err := s.ensureNoLeaseOverlap(txCtx, current.RoomID, period, current.ID, false); err != nil {
			return false, err
		}
		current.ApplyClose(end, requestcontext.Now(txCtx))
		return true, nil
	})
	s.metrics.ObserveWrite(opClose, began)
	if err != nil {
		s.recordFailure(span, opClose, err)
		return nil, err
	}

	s.metrics.IncrementWrite(opClose)
	s.afterWrite(ctx, audit.ActionLeaseClosed, lease)
	return lease, nil
}

// MarkPresent records the occupant's arrival. Marking a present lease again
// is a no-op.
func (s *Service) MarkPresent(ctx context.Context, leaseID id.LeaseID) (*models.LeaseContract, error) {
	ctx, span := tracer.Start(ctx, "lease.MarkPresent", trace.WithAttributes(
		attribute.String("lease_id", leaseID.String()),
	))
	defer span.End()
	began := time.Now()

	changed := false
	lease, err := s.mutateUnderLock(ctx, leaseID, func(txCtx context.Context, current *models.LeaseContract) (bool, error) {
		if err := current.CanMarkPresent(); err != nil {
			return false, invariantToConflict(err)
		}
		if current.IsPresent {
			return false, nil
		}
		if err := s.ensureNoLeaseOverlap(txCtx, current.RoomID, current.Period(), current.ID, true); err != nil {
			return false, err
		}
		current.IsPresent = true
		changed = true
		return true, nil
	})
	s.metrics.ObserveWrite(opPresent, began)
	if err != nil {
		s.recordFailure(span, opPresent, err)
		return nil, err
	}

	if changed {
		s.metrics.IncrementWrite(opPresent)
		s.afterWrite(ctx, audit.ActionLeasePresent, lease)
	}
	return lease, nil
}

// MarkSigned records the signed contract. It runs under the room lock so it
// cannot overwrite a concurrent close or presence change.
func (s *Service) MarkSigned(ctx context.Context, leaseID id.LeaseID) (*models.LeaseContract, error) {
	ctx, span := tracer.Start(ctx, "lease.MarkSigned", trace.WithAttributes(
		attribute.String("lease_id", leaseID.String()),
	))
	defer span.End()
	began := time.Now()

	changed := false
	lease, err := s.mutateUnderLock(ctx, leaseID, func(_ context.Context, current *models.LeaseContract) (bool, error) {
		if current.IsSigned {
			return false, nil
		}
		current.IsSigned = true
		changed = true
		return true, nil
	})
	s.metrics.ObserveWrite(opSigned, began)
	if err != nil {
		s.recordFailure(span, opSigned, err)
		return nil, err
	}

	if changed {
		s.metrics.IncrementWrite(opSigned)
		s.afterWrite(ctx, audit.ActionLeaseSigned, lease)
	}
	return lease, nil
}

// mutateUnderLock loads the lease, then re-reads and mutates it inside the
// transaction keyed by its room. mutate reports whether to persist.
func (s *Service) mutateUnderLock(ctx context.Context, leaseID id.LeaseID, mutate func(context.Context, *models.LeaseContract) (bool, error)) (*models.LeaseContract, error) {
	existing, err := s.leases.FindByID(ctx, leaseID)
	if err != nil {
		return nil, wrapLeaseErr(err, "failed to load lease")
	}

	var result *models.LeaseContract
	err = s.tx.RunInTx(ctx, existing.RoomID.LockKey(), func(txCtx context.Context) error {
		current, err := s.leases.FindByID(txCtx, leaseID)
		if err != nil {
			return wrapLeaseErr(err, "failed to load lease")
		}
		persist, err := mutate(txCtx, current)
		if err != nil {
			return err
		}
		if persist {
			if err := s.leases.Update(txCtx, current); err != nil {
				return translateWriteErr(err, "lease not found", "failed to update lease")
			}
		}
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, leaseID id.LeaseID) (*models.LeaseContract, error) {
	lease, err := s.leases.FindByID(ctx, leaseID)
	if err != nil {
		return nil, wrapLeaseErr(err, "failed to load lease")
	}
	return lease, nil
}

func (s *Service) ListByRoom(ctx context.Context, roomID id.RoomID) ([]*models.LeaseContract, error) {
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	leases, err := s.leases.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list leases")
	}
	return leases, nil
}

// CreateDeposit records a deposit covering one or more existing rooms.
func (s *Service) CreateDeposit(ctx context.Context, in models.DepositInput) (*models.Deposit, error) {
	deposit, err := models.NewDeposit(id.DepositID(uuid.New()), in, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	for _, roomID := range deposit.RoomIDs {
		if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
			return nil, err
		}
	}
	if err := s.deposits.Create(ctx, deposit); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create deposit")
	}

	event := audit.Event{
		Action:    audit.ActionDepositTaken,
		SubjectID: deposit.ID.String(),
		Detail:    id.FormatDate(deposit.DepositDate),
	}
	if len(deposit.RoomIDs) == 1 {
		event.RoomID = deposit.RoomIDs[0]
	}
	audit.EmitBestEffort(ctx, s.auditPublisher, s.logger, event)
	return deposit, nil
}

// RefundDeposit closes the deposit with its back date. A deposit is refunded
// at most once.
func (s *Service) RefundDeposit(ctx context.Context, depositID id.DepositID, backDate time.Time) (*models.Deposit, error) {
	began := time.Now()
	deposit, err := s.deposits.Execute(ctx, depositID,
		func(d *models.Deposit) error { return d.CanRefund(backDate) },
		func(d *models.Deposit) { d.ApplyRefund(backDate) },
	)
	s.metrics.ObserveWrite(opRefund, began)
	if err != nil {
		err = invariantToConflict(wrapDepositErr(err, "failed to refund deposit"))
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			s.metrics.IncrementConflict(opRefund)
		}
		return nil, err
	}

	s.metrics.IncrementWrite(opRefund)
	audit.EmitBestEffort(ctx, s.auditPublisher, s.logger, audit.Event{
		Action:    audit.ActionDepositRefund,
		SubjectID: deposit.ID.String(),
		Detail:    id.FormatDate(backDate),
	})
	return deposit, nil
}

func (s *Service) GetDeposit(ctx context.Context, depositID id.DepositID) (*models.Deposit, error) {
	deposit, err := s.deposits.FindByID(ctx, depositID)
	if err != nil {
		return nil, wrapDepositErr(err, "failed to load deposit")
	}
	return deposit, nil
}

func (s *Service) ListDepositsByUser(ctx context.Context, userID id.UserID) ([]*models.Deposit, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	deposits, err := s.deposits.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list deposits")
	}
	return deposits, nil
}

func (s *Service) ensureNoLeaseOverlap(ctx context.Context, roomID id.RoomID, period id.Period, exclude id.LeaseID, presentOnly bool) error {
	overlapping, err := s.leases.ListOverlapping(ctx, roomID, period, exclude, presentOnly)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check overlapping leases")
	}
	if len(overlapping) == 0 {
		return nil
	}
	if presentOnly {
		return dErrors.New(dErrors.CodeConflict, "another present lease overlaps this period")
	}
	return dErrors.New(dErrors.CodeConflict, "room is already leased for an overlapping period")
}

func (s *Service) afterWrite(ctx context.Context, action audit.Action, lease *models.LeaseContract) {
	s.logger.InfoContext(ctx, "lease write committed",
		"action", string(action),
		"room_id", lease.RoomID.String(),
		"lease_id", lease.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	audit.EmitBestEffort(ctx, s.auditPublisher, s.logger, audit.Event{
		Action:    action,
		RoomID:    lease.RoomID,
		SubjectID: lease.ID.String(),
		Detail:    id.FormatDate(lease.StartDate) + "-" + id.FormatOptionalDate(lease.EndDate),
	})
}

// refreshReservedHint recomputes the advisory flag after a reservation was
// consumed. Failures are logged only.
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

// translateWriteErr maps a store failure inside the room transaction. The
// present-lease exclusion constraint surfaces as sentinel.ErrConflict.
func translateWriteErr(err error, notFoundMsg, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "another present lease overlaps this period")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func invariantToConflict(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeConflict, dErrors.MessageOf(err))
	}
	return err
}

func wrapLeaseErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "lease not found")
	}
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func wrapDepositErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "deposit not found")
	}
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
