package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"hostel/internal/availability/models"
	catalogmodels "hostel/internal/catalog/models"
	leasemodels "hostel/internal/lease/models"
	"hostel/internal/platform/metrics"
	reservationmodels "hostel/internal/reservation/models"
	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
	"hostel/pkg/requestcontext"
)

var tracer = otel.Tracer("hostel/internal/availability")

type RoomCatalog interface {
	GetRoom(ctx context.Context, roomID id.RoomID) (*catalogmodels.Room, error)
	GetFloor(ctx context.Context, floorID id.FloorID) (*catalogmodels.Floor, error)
	GetRoomsByCenter(ctx context.Context, centerID id.CenterID) ([]*catalogmodels.Room, error)
	ListFloors(ctx context.Context, centerID id.CenterID) ([]*catalogmodels.Floor, error)
}

type ReservationReader interface {
	ListEndingAfter(ctx context.Context, roomIDs []id.RoomID, t time.Time) ([]*reservationmodels.Reservation, error)
}

type LeaseReader interface {
	ListPresentAt(ctx context.Context, roomIDs []id.RoomID, t time.Time) ([]*leasemodels.LeaseContract, error)
}

// Service derives room occupancy from the live reservation and lease
// records. It performs no writes and takes no room locks.
type Service struct {
	rooms        RoomCatalog
	reservations ReservationReader
	leases       LeaseReader
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(rooms RoomCatalog, reservations ReservationReader, leases LeaseReader, opts ...Option) *Service {
	s := &Service{rooms: rooms, reservations: reservations, leases: leases}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Service) ListAvailable(ctx context.Context, centerID id.CenterID) ([]models.RoomStatus, error) {
	return s.listByStatus(ctx, centerID, models.StatusAvailable)
}

func (s *Service) ListReserved(ctx context.Context, centerID id.CenterID) ([]models.RoomStatus, error) {
	return s.listByStatus(ctx, centerID, models.StatusReserved)
}

func (s *Service) ListOccupied(ctx context.Context, centerID id.CenterID) ([]models.RoomStatus, error) {
	return s.listByStatus(ctx, centerID, models.StatusOccupied)
}

// ListWomenOnly returns the usable rooms on women-only floors, whatever their
// occupancy.
func (s *Service) ListWomenOnly(ctx context.Context, centerID id.CenterID) ([]models.RoomStatus, error) {
	began := time.Now()
	statuses, err := s.classifyCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}
	out := make([]models.RoomStatus, 0)
	for _, rs := range statuses {
		if rs.WomenOnly && rs.Status != models.StatusUnusable {
			out = append(out, rs)
		}
	}
	s.metrics.ObserveAvailability("women_only", began)
	return out, nil
}

// Classify derives the status of a single room.
func (s *Service) Classify(ctx context.Context, roomID id.RoomID) (*models.RoomStatus, error) {
	ctx, span := tracer.Start(ctx, "availability.Classify", trace.WithAttributes(
		attribute.String("room_id", roomID.String()),
	))
	defer span.End()
	began := time.Now()

	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	floor, err := s.rooms.GetFloor(ctx, room.FloorID)
	if err != nil {
		return nil, err
	}
	floors := map[id.FloorID]*catalogmodels.Floor{floor.ID: floor}
	statuses, err := s.classify(ctx, []*catalogmodels.Room{room}, floors)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveAvailability(string(statuses[0].Status), began)
	return &statuses[0], nil
}

func (s *Service) listByStatus(ctx context.Context, centerID id.CenterID, status models.Status) ([]models.RoomStatus, error) {
	began := time.Now()
	statuses, err := s.classifyCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}
	out := make([]models.RoomStatus, 0)
	for _, rs := range statuses {
		if rs.Status == status {
			out = append(out, rs)
		}
	}
	s.metrics.ObserveAvailability(string(status), began)
	return out, nil
}

// classifyCenter classifies every room of the center, in catalog order.
func (s *Service) classifyCenter(ctx context.Context, centerID id.CenterID) ([]models.RoomStatus, error) {
	ctx, span := tracer.Start(ctx, "availability.classifyCenter", trace.WithAttributes(
		attribute.String("center_id", centerID.String()),
	))
	defer span.End()

	if centerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "center is required")
	}

	var (
		rooms  []*catalogmodels.Room
		floors []*catalogmodels.Floor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = s.rooms.GetRoomsByCenter(gctx, centerID)
		return err
	})
	g.Go(func() error {
		var err error
		floors, err = s.rooms.ListFloors(gctx, centerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[id.FloorID]*catalogmodels.Floor, len(floors))
	for _, f := range floors {
		byID[f.ID] = f
	}
	span.SetAttributes(attribute.Int("rooms", len(rooms)))
	return s.classify(ctx, rooms, byID)
}

// classify loads the reservations and present leases of rooms concurrently
// and applies models.Classify to each room.
func (s *Service) classify(ctx context.Context, rooms []*catalogmodels.Room, floors map[id.FloorID]*catalogmodels.Floor) ([]models.RoomStatus, error) {
	if len(rooms) == 0 {
		return []models.RoomStatus{}, nil
	}
	now := requestcontext.Now(ctx)
	roomIDs := make([]id.RoomID, 0, len(rooms))
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
	}

	reserved := make(map[id.RoomID]bool)
	occupied := make(map[id.RoomID]bool)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reservations, err := s.reservations.ListEndingAfter(gctx, roomIDs, now)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reservations")
		}
		for _, r := range reservations {
			reserved[r.RoomID] = true
		}
		return nil
	})
	g.Go(func() error {
		leases, err := s.leases.ListPresentAt(gctx, roomIDs, now)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load leases")
		}
		for _, l := range leases {
			occupied[l.RoomID] = true
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "availability load failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, err
	}

	out := make([]models.RoomStatus, 0, len(rooms))
	for _, r := range rooms {
		rs := models.RoomStatus{
			Room:   r,
			Status: models.Classify(r.Usable, occupied[r.ID], reserved[r.ID]),
		}
		if f, ok := floors[r.FloorID]; ok {
			rs.FloorNumber = f.Number
			rs.WomenOnly = f.WomenOnly
		}
		out = append(out, rs)
	}
	return out, nil
}
