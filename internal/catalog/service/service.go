package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hostel/internal/catalog/models"
	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
	audit "hostel/pkg/platform/audit"
	"hostel/pkg/platform/sentinel"
	"hostel/pkg/requestcontext"
)

var tracer = otel.Tracer("hostel/internal/catalog")

type Store interface {
	CreateFloor(ctx context.Context, floor *models.Floor) error
	FindFloor(ctx context.Context, floorID id.FloorID) (*models.Floor, error)
	ListFloorsByCenter(ctx context.Context, centerID id.CenterID) ([]*models.Floor, error)
	UpdateFloor(ctx context.Context, floorID id.FloorID, mutate func(*models.Floor) error) (*models.Floor, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	FindRoom(ctx context.Context, roomID id.RoomID) (*models.Room, error)
	FindRoomByNumber(ctx context.Context, centerID id.CenterID, number string) (*models.Room, error)
	ListRoomsByCenter(ctx context.Context, centerID id.CenterID) ([]*models.Room, error)
	UpdateRoom(ctx context.Context, roomID id.RoomID, mutate func(*models.Room) error) (*models.Room, error)
}

// Service owns floor and room records. Rooms are never deleted here; taking
// a room out of circulation is SetUsable(false).
type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher audit.Publisher
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

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Service) GetRoom(ctx context.Context, roomID id.RoomID) (*models.Room, error) {
	room, err := s.store.FindRoom(ctx, roomID)
	if err != nil {
		return nil, wrapRoomErr(err, "failed to load room")
	}
	return room, nil
}

// GetRoomsByCenter lists every room of the center's floors, ordered by floor
// number then room number. An unknown center yields an empty list.
func (s *Service) GetRoomsByCenter(ctx context.Context, centerID id.CenterID) ([]*models.Room, error) {
	rooms, err := s.store.ListRoomsByCenter(ctx, centerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list rooms")
	}
	return rooms, nil
}

func (s *Service) GetRoomByNumberAndCenter(ctx context.Context, number string, centerID id.CenterID) (*models.Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "room number is required")
	}
	room, err := s.store.FindRoomByNumber(ctx, centerID, number)
	if err != nil {
		return nil, wrapRoomErr(err, "failed to load room")
	}
	return room, nil
}

// SetUsable flips the usability flag. Unusable rooms drop out of every
// availability listing.
func (s *Service) SetUsable(ctx context.Context, roomID id.RoomID, usable bool) (*models.Room, error) {
	ctx, span := tracer.Start(ctx, "catalog.SetUsable", trace.WithAttributes(
		attribute.String("room_id", roomID.String()),
		attribute.Bool("usable", usable),
	))
	defer span.End()

	now := requestcontext.Now(ctx)
	room, err := s.store.UpdateRoom(ctx, roomID, func(r *models.Room) error {
		r.Usable = usable
		r.UpdatedAt = now
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, wrapRoomErr(err, "failed to update room")
	}

	s.logger.InfoContext(ctx, "room usability changed",
		"room_id", roomID.String(),
		"usable", usable,
		"request_id", requestcontext.RequestID(ctx),
	)
	audit.EmitBestEffort(ctx, s.auditPublisher, s.logger, audit.Event{
		Action:    audit.ActionRoomUsableChanged,
		RoomID:    roomID,
		SubjectID: roomID.String(),
		Detail:    boolDetail("usable", usable),
	})
	return room, nil
}

func (s *Service) CreateFloor(ctx context.Context, centerID id.CenterID, number int, womenOnly bool) (*models.Floor, error) {
	floor, err := models.NewFloor(id.FloorID(uuid.New()), centerID, number, womenOnly, requestcontext.Now(ctx))
	if err != nil {
		return nil, invariantToValidation(err)
	}
	if err := s.store.CreateFloor(ctx, floor); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "floor number already exists in this center")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create floor")
	}

	audit.EmitBestEffort(ctx, s.auditPublisher, s.logger, audit.Event{
		Action:    audit.ActionFloorCreated,
		SubjectID: floor.ID.String(),
	})
	return floor, nil
}

func (s *Service) GetFloor(ctx context.Context, floorID id.FloorID) (*models.Floor, error) {
	floor, err := s.store.FindFloor(ctx, floorID)
	if err != nil {
		return nil, wrapFloorErr(err, "failed to load floor")
	}
	return floor, nil
}

func (s *Service) ListFloors(ctx context.Context, centerID id.CenterID) ([]*models.Floor, error) {
	floors, err := s.store.ListFloorsByCenter(ctx, centerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list floors")
	}
	return floors, nil
}

func (s *Service) SetWomenOnly(ctx context.Context, floorID id.FloorID, womenOnly bool) (*models.Floor, error) {
	now := requestcontext.Now(ctx)
	floor, err := s.store.UpdateFloor(ctx, floorID, func(f *models.Floor) error {
		f.WomenOnly = womenOnly
		f.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, wrapFloorErr(err, "failed to update floor")
	}

	audit.EmitBestEffort(ctx, s.auditPublisher, s.logger, audit.Event{
		Action:    audit.ActionFloorWomenOnlyChanged,
		SubjectID: floorID.String(),
		Detail:    boolDetail("women_only", womenOnly),
	})
	return floor, nil
}

// CreateRoom adds a usable room to floor. The number must be free within the
// floor's center.
func (s *Service) CreateRoom(ctx context.Context, floorID id.FloorID, number, keyNumber, badgeNumber string) (*models.Room, error) {
	floor, err := s.store.FindFloor(ctx, floorID)
	if err != nil {
		return nil, wrapFloorErr(err, "failed to load floor")
	}
	room, err := models.NewRoom(id.RoomID(uuid.New()), floor, number, keyNumber, badgeNumber, requestcontext.Now(ctx))
	if err != nil {
		return nil, invariantToValidation(err)
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			return nil, dErrors.New(dErrors.CodeConflict, "room number already exists in this center")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "floor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create room")
	}

	audit.EmitBestEffort(ctx, s.auditPublisher, s.logger, audit.Event{
		Action:    audit.ActionRoomCreated,
		RoomID:    room.ID,
		SubjectID: room.ID.String(),
	})
	return room, nil
}

// RefreshReservedHint rewrites the advisory reserved flag. Nothing reads the
// flag to decide availability.
func (s *Service) RefreshReservedHint(ctx context.Context, roomID id.RoomID, reserved bool) error {
	_, err := s.store.UpdateRoom(ctx, roomID, func(r *models.Room) error {
		r.Reserved = reserved
		return nil
	})
	if err != nil {
		return wrapRoomErr(err, "failed to refresh reserved hint")
	}
	return nil
}

func wrapRoomErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "room not found")
	}
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func wrapFloorErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "floor not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func invariantToValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
	}
	return err
}

func boolDetail(field string, v bool) string {
	if v {
		return field + "=true"
	}
	return field + "=false"
}
