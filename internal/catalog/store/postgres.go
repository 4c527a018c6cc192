package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hostel/internal/catalog/models"
	"hostel/internal/platform/postgres"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
	"hostel/pkg/platform/tx"
)

// PostgresStore persists floors and rooms. Read-modify-write updates lock the
// row with FOR UPDATE inside the caller's transaction, or a private one.
type PostgresStore struct {
	db     *sql.DB
	runner *tx.PostgresRunner
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, runner: tx.NewPostgres(db)}
}

const floorColumns = `id, center_id, number, women_only, created_at, updated_at`

const roomColumns = `r.id, r.floor_id, r.center_id, r.number, r.key_number, r.badge_number,
	r.usable, r.reserved, r.created_at, r.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFloor(row rowScanner) (*models.Floor, error) {
	var f models.Floor
	err := row.Scan(
		(*uuid.UUID)(&f.ID),
		(*uuid.UUID)(&f.CenterID),
		&f.Number,
		&f.WomenOnly,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func scanRoom(row rowScanner) (*models.Room, error) {
	var r models.Room
	err := row.Scan(
		(*uuid.UUID)(&r.ID),
		(*uuid.UUID)(&r.FloorID),
		(*uuid.UUID)(&r.CenterID),
		&r.Number,
		&r.KeyNumber,
		&r.BadgeNumber,
		&r.Usable,
		&r.Reserved,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	return err
}

func (s *PostgresStore) CreateFloor(ctx context.Context, floor *models.Floor) error {
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO floors (`+floorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(floor.ID), uuid.UUID(floor.CenterID), floor.Number, floor.WomenOnly,
		floor.CreatedAt, floor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert floor: %w", postgres.Classify(err))
	}
	return nil
}

func (s *PostgresStore) FindFloor(ctx context.Context, floorID id.FloorID) (*models.Floor, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+floorColumns+` FROM floors WHERE id = $1`, uuid.UUID(floorID))
	floor, err := scanFloor(row)
	if err != nil {
		return nil, notFound(err)
	}
	return floor, nil
}

func (s *PostgresStore) ListFloorsByCenter(ctx context.Context, centerID id.CenterID) ([]*models.Floor, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+floorColumns+` FROM floors WHERE center_id = $1 ORDER BY number`, uuid.UUID(centerID))
	if err != nil {
		return nil, fmt.Errorf("list floors: %w", err)
	}
	defer rows.Close()

	floors := make([]*models.Floor, 0)
	for rows.Next() {
		floor, err := scanFloor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan floor: %w", err)
		}
		floors = append(floors, floor)
	}
	return floors, rows.Err()
}

func (s *PostgresStore) UpdateFloor(ctx context.Context, floorID id.FloorID, mutate func(*models.Floor) error) (*models.Floor, error) {
	var floor *models.Floor
	err := s.runner.RunInTx(ctx, "", func(ctx context.Context) error {
		conn := tx.Conn(ctx, s.db)
		current, err := scanFloor(conn.QueryRowContext(ctx,
			`SELECT `+floorColumns+` FROM floors WHERE id = $1 FOR UPDATE`, uuid.UUID(floorID)))
		if err != nil {
			return notFound(err)
		}
		if err := mutate(current); err != nil {
			return err
		}
		if _, err := conn.ExecContext(ctx,
			`UPDATE floors SET women_only = $2, updated_at = $3 WHERE id = $1`,
			uuid.UUID(floorID), current.WomenOnly, current.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update floor: %w", err)
		}
		floor = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return floor, nil
}

func (s *PostgresStore) CreateRoom(ctx context.Context, room *models.Room) error {
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO rooms (id, floor_id, center_id, number, key_number, badge_number,
			usable, reserved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.UUID(room.ID), uuid.UUID(room.FloorID), uuid.UUID(room.CenterID), room.Number,
		room.KeyNumber, room.BadgeNumber, room.Usable, room.Reserved, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert room: %w", postgres.Classify(err))
	}
	return nil
}

func (s *PostgresStore) FindRoom(ctx context.Context, roomID id.RoomID) (*models.Room, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms r WHERE r.id = $1`, uuid.UUID(roomID))
	room, err := scanRoom(row)
	if err != nil {
		return nil, notFound(err)
	}
	return room, nil
}

func (s *PostgresStore) FindRoomByNumber(ctx context.Context, centerID id.CenterID, number string) (*models.Room, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms r WHERE r.center_id = $1 AND r.number = $2`,
		uuid.UUID(centerID), number)
	room, err := scanRoom(row)
	if err != nil {
		return nil, notFound(err)
	}
	return room, nil
}

func (s *PostgresStore) ListRoomsByCenter(ctx context.Context, centerID id.CenterID) ([]*models.Room, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT `+roomColumns+`
		FROM rooms r
		JOIN floors f ON f.id = r.floor_id
		WHERE r.center_id = $1
		ORDER BY f.number, length(r.number), r.number`, uuid.UUID(centerID))
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]*models.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (s *PostgresStore) UpdateRoom(ctx context.Context, roomID id.RoomID, mutate func(*models.Room) error) (*models.Room, error) {
	var room *models.Room
	err := s.runner.RunInTx(ctx, "", func(ctx context.Context) error {
		conn := tx.Conn(ctx, s.db)
		current, err := scanRoom(conn.QueryRowContext(ctx,
			`SELECT `+roomColumns+` FROM rooms r WHERE r.id = $1 FOR UPDATE`, uuid.UUID(roomID)))
		if err != nil {
			return notFound(err)
		}
		if err := mutate(current); err != nil {
			return err
		}
		if _, err := conn.ExecContext(ctx, `
			UPDATE rooms
			SET key_number = $2, badge_number = $3, usable = $4, reserved = $5, updated_at = $6
			WHERE id = $1`,
			uuid.UUID(roomID), current.KeyNumber, current.BadgeNumber, current.Usable,
			current.Reserved, current.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update room: %w", err)
		}
		room = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}
