package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hostel/internal/platform/postgres"
	"hostel/internal/reservation/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
	"hostel/pkg/platform/tx"
)

// PostgresStore persists reservations. The reservations_no_overlap exclusion
// constraint rejects overlapping rows even if a caller skips the room lock;
// that surfaces as sentinel.ErrConflict.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const reservationColumns = `id, room_id, motive_id, start_date, end_date, reservation_date, created_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var (
		r         models.Reservation
		createdBy uuid.NullUUID
	)
	err := row.Scan(
		(*uuid.UUID)(&r.ID),
		(*uuid.UUID)(&r.RoomID),
		(*uuid.UUID)(&r.MotiveID),
		&r.StartDate,
		&r.EndDate,
		&r.ReservationDate,
		&createdBy,
	)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		r.CreatedBy = id.UserID(createdBy.UUID)
	}
	r.StartDate = r.StartDate.UTC()
	r.EndDate = r.EndDate.UTC()
	return &r, nil
}

func nullableUser(userID id.UserID) uuid.NullUUID {
	return uuid.NullUUID{UUID: uuid.UUID(userID), Valid: !userID.IsNil()}
}

func (s *PostgresStore) Create(ctx context.Context, reservation *models.Reservation) error {
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.UUID(reservation.ID), uuid.UUID(reservation.RoomID), uuid.UUID(reservation.MotiveID),
		reservation.StartDate, reservation.EndDate, reservation.ReservationDate,
		nullableUser(reservation.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", postgres.Classify(err))
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, reservation *models.Reservation) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE reservations SET start_date = $2, end_date = $3 WHERE id = $1`,
		uuid.UUID(reservation.ID), reservation.StartDate, reservation.EndDate,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", postgres.Classify(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, reservationID id.ReservationID) (*models.Reservation, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`DELETE FROM reservations WHERE id = $1 RETURNING `+reservationColumns, uuid.UUID(reservationID))
	reservation, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("delete reservation: %w", err)
	}
	return reservation, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, reservationID id.ReservationID) (*models.Reservation, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, uuid.UUID(reservationID))
	reservation, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return reservation, nil
}

func (s *PostgresStore) ListByRoom(ctx context.Context, roomID id.RoomID) ([]*models.Reservation, error) {
	return s.query(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		WHERE room_id = $1
		ORDER BY start_date`, uuid.UUID(roomID))
}

// ListOverlapping applies start < other.end AND end > other.start. An
// open-ended period binds NULL and matches every reservation ending after its
// start. The zero exclude id matches no row.
func (s *PostgresStore) ListOverlapping(ctx context.Context, roomID id.RoomID, period id.Period, exclude id.ReservationID) ([]*models.Reservation, error) {
	return s.query(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		WHERE room_id = $1
			AND ($3::timestamptz IS NULL OR start_date < $3)
			AND end_date > $2
			AND id <> $4
		ORDER BY start_date`,
		uuid.UUID(roomID), period.Start, period.EndPtr(), uuid.UUID(exclude))
}

func (s *PostgresStore) ListEndingAfter(ctx context.Context, roomIDs []id.RoomID, t time.Time) ([]*models.Reservation, error) {
	if len(roomIDs) == 0 {
		return []*models.Reservation{}, nil
	}
	ids := make([]string, len(roomIDs))
	for i, roomID := range roomIDs {
		ids[i] = roomID.String()
	}
	return s.query(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		WHERE room_id = ANY($1::uuid[]) AND end_date > $2
		ORDER BY room_id, start_date`, pq.Array(ids), t)
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.Reservation, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		result = append(result, reservation)
	}
	return result, rows.Err()
}
