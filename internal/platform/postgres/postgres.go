// Package postgres opens the shared *sql.DB (pgx stdlib driver), applies the
// schema, and classifies driver errors into storage sentinels.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"hostel/internal/platform/config"
	"hostel/pkg/platform/sentinel"
)

//go:embed schema.sql
var schema string

// SQLSTATE codes the stores care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeExclusionViolation  = "23P01"
	codeSerialization       = "40001"
)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// Migrate applies the idempotent schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Classify maps constraint violations onto storage sentinels and leaves
// every other error untouched:
//   - exclusion or serialization failure → sentinel.ErrConflict
//   - unique violation → sentinel.ErrAlreadyUsed
//   - foreign key violation → sentinel.ErrNotFound
func Classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeExclusionViolation, codeSerialization:
		return fmt.Errorf("%w: %s", sentinel.ErrConflict, pgErr.ConstraintName)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", sentinel.ErrAlreadyUsed, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", sentinel.ErrNotFound, pgErr.ConstraintName)
	default:
		return err
	}
}
