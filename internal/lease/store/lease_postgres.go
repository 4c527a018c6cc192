package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hostel/internal/lease/models"
	"hostel/internal/platform/postgres"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
	"hostel/pkg/platform/tx"
)

// PostgresLeaseStore persists leases. The leases_present_no_overlap
// exclusion constraint backs the present-lease rule at storage level.
type PostgresLeaseStore struct {
	db *sql.DB
}

func NewPostgresLeaseStore(db *sql.DB) *PostgresLeaseStore {
	return &PostgresLeaseStore{db: db}
}

const leaseColumns = `id, user_id, room_id, rent_id, start_date, end_date, is_present, is_signed, closed_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLease(row rowScanner) (*models.LeaseContract, error) {
	var (
		l        models.LeaseContract
		endDate  sql.NullTime
		closedAt sql.NullTime
	)
	err := row.Scan(
		(*uuid.UUID)(&l.ID),
		(*uuid.UUID)(&l.UserID),
		(*uuid.UUID)(&l.RoomID),
		(*uuid.UUID)(&l.RentID),
		&l.StartDate,
		&endDate,
		&l.IsPresent,
		&l.IsSigned,
		&closedAt,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.StartDate = l.StartDate.UTC()
	if endDate.Valid {
		end := endDate.Time.UTC()
		l.EndDate = &end
	}
	if closedAt.Valid {
		closed := closedAt.Time.UTC()
		l.ClosedAt = &closed
	}
	return &l, nil
}

func (s *PostgresLeaseStore) Create(ctx context.Context, lease *models.LeaseContract) error {
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO leases (`+leaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.UUID(lease.ID), uuid.UUID(lease.UserID), uuid.UUID(lease.RoomID), uuid.UUID(lease.RentID),
		lease.StartDate, lease.EndDate, lease.IsPresent, lease.IsSigned, lease.ClosedAt, lease.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lease: %w", postgres.Classify(err))
	}
	return nil
}

func (s *PostgresLeaseStore) Update(ctx context.Context, lease *models.LeaseContract) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE leases
		SET end_date = $2, is_present = $3, is_signed = $4, closed_at = $5
		WHERE id = $1`,
		uuid.UUID(lease.ID), lease.EndDate, lease.IsPresent, lease.IsSigned, lease.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update lease: %w", postgres.Classify(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lease: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresLeaseStore) FindByID(ctx context.Context, leaseID id.LeaseID) (*models.LeaseContract, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+leaseColumns+` FROM leases WHERE id = $1`, uuid.UUID(leaseID))
	lease, err := scanLease(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find lease: %w", err)
	}
	return lease, nil
}

func (s *PostgresLeaseStore) ListByRoom(ctx context.Context, roomID id.RoomID) ([]*models.LeaseContract, error) {
	return s.query(ctx, `
		SELECT `+leaseColumns+` FROM leases
		WHERE room_id = $1
		ORDER BY start_date`, uuid.UUID(roomID))
}

// ListOverlapping treats a NULL end on either side as infinity.
func (s *PostgresLeaseStore) ListOverlapping(ctx context.Context, roomID id.RoomID, period id.Period, exclude id.LeaseID, presentOnly bool) ([]*models.LeaseContract, error) {
	return s.query(ctx, `
		SELECT `+leaseColumns+` FROM leases
		WHERE room_id = $1
			AND ($3::timestamptz IS NULL OR start_date < $3)
			AND (end_date IS NULL OR end_date > $2)
			AND id <> $4
			AND (NOT $5 OR is_present)
		ORDER BY start_date`,
		uuid.UUID(roomID), period.Start, period.EndPtr(), uuid.UUID(exclude), presentOnly)
}

func (s *PostgresLeaseStore) ListPresentAt(ctx context.Context, roomIDs []id.RoomID, t time.Time) ([]*models.LeaseContract, error) {
	if len(roomIDs) == 0 {
		return []*models.LeaseContract{}, nil
	}
	ids := make([]string, len(roomIDs))
	for i, roomID := range roomIDs {
		ids[i] = roomID.String()
	}
	return s.query(ctx, `
		SELECT `+leaseColumns+` FROM leases
		WHERE room_id = ANY($1::uuid[])
			AND is_present
			AND start_date <= $2
			AND (end_date IS NULL OR end_date > $2)
		ORDER BY room_id, start_date`, pq.Array(ids), t)
}

func (s *PostgresLeaseStore) query(ctx context.Context, query string, args ...any) ([]*models.LeaseContract, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leases: %w", err)
	}
	defer rows.Close()

	result := make([]*models.LeaseContract, 0)
	for rows.Next() {
		lease, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lease: %w", err)
		}
		result = append(result, lease)
	}
	return result, rows.Err()
}
