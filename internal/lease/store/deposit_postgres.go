package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hostel/internal/lease/models"
	"hostel/internal/platform/postgres"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
	"hostel/pkg/platform/tx"
)

// PostgresDepositStore persists deposits; room ids live in a uuid[] column.
type PostgresDepositStore struct {
	db     *sql.DB
	runner *tx.PostgresRunner
}

func NewPostgresDepositStore(db *sql.DB) *PostgresDepositStore {
	return &PostgresDepositStore{db: db, runner: tx.NewPostgres(db)}
}

const depositSelect = `SELECT id, user_id, guarantee_id, deposit_type_id, room_ids::text[],
	deposit_date, back_deposit_date, amount_cents, created_at FROM deposits`

func scanDeposit(row rowScanner) (*models.Deposit, error) {
	var (
		d        models.Deposit
		roomIDs  pq.StringArray
		backDate sql.NullTime
	)
	err := row.Scan(
		(*uuid.UUID)(&d.ID),
		(*uuid.UUID)(&d.UserID),
		(*uuid.UUID)(&d.GuaranteeID),
		(*uuid.UUID)(&d.DepositTypeID),
		&roomIDs,
		&d.DepositDate,
		&backDate,
		&d.AmountCents,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.DepositDate = d.DepositDate.UTC()
	d.RoomIDs = make([]id.RoomID, 0, len(roomIDs))
	for _, raw := range roomIDs {
		roomID, err := id.ParseRoomID(raw)
		if err != nil {
			return nil, fmt.Errorf("parse deposit room id: %w", err)
		}
		d.RoomIDs = append(d.RoomIDs, roomID)
	}
	if backDate.Valid {
		back := backDate.Time.UTC()
		d.BackDepositDate = &back
	}
	return &d, nil
}

func roomIDStrings(roomIDs []id.RoomID) []string {
	out := make([]string, len(roomIDs))
	for i, roomID := range roomIDs {
		out[i] = roomID.String()
	}
	return out
}

func (s *PostgresDepositStore) Create(ctx context.Context, deposit *models.Deposit) error {
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO deposits (id, user_id, guarantee_id, deposit_type_id, room_ids,
			deposit_date, back_deposit_date, amount_cents, created_at)
		VALUES ($1, $2, $3, $4, $5::uuid[], $6, $7, $8, $9)`,
		uuid.UUID(deposit.ID), uuid.UUID(deposit.UserID), uuid.UUID(deposit.GuaranteeID),
		uuid.UUID(deposit.DepositTypeID), pq.Array(roomIDStrings(deposit.RoomIDs)),
		deposit.DepositDate, deposit.BackDepositDate, deposit.AmountCents, deposit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deposit: %w", postgres.Classify(err))
	}
	return nil
}

func (s *PostgresDepositStore) FindByID(ctx context.Context, depositID id.DepositID) (*models.Deposit, error) {
	deposit, err := scanDeposit(tx.Conn(ctx, s.db).QueryRowContext(ctx,
		depositSelect+` WHERE id = $1`, uuid.UUID(depositID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find deposit: %w", err)
	}
	return deposit, nil
}

func (s *PostgresDepositStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Deposit, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		depositSelect+` WHERE user_id = $1 ORDER BY deposit_date DESC`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Deposit, 0)
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}
		result = append(result, deposit)
	}
	return result, rows.Err()
}

// Execute locks the row FOR UPDATE for the validate-then-mutate sequence.
func (s *PostgresDepositStore) Execute(ctx context.Context, depositID id.DepositID, validate func(*models.Deposit) error, mutate func(*models.Deposit)) (*models.Deposit, error) {
	var deposit *models.Deposit
	err := s.runner.RunInTx(ctx, "", func(ctx context.Context) error {
		conn := tx.Conn(ctx, s.db)
		current, err := scanDeposit(conn.QueryRowContext(ctx,
			depositSelect+` WHERE id = $1 FOR UPDATE`, uuid.UUID(depositID)))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sentinel.ErrNotFound
			}
			return fmt.Errorf("lock deposit: %w", err)
		}
		if err := validate(current); err != nil {
			return err
		}
		mutate(current)
		if _, err := conn.ExecContext(ctx,
			`UPDATE deposits SET back_deposit_date = $2 WHERE id = $1`,
			uuid.UUID(depositID), current.BackDepositDate,
		); err != nil {
			return fmt.Errorf("update deposit: %w", err)
		}
		deposit = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deposit, nil
}
