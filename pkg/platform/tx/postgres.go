package tx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresRunner runs fn in a database/sql transaction carried by context.
// When key is non-empty the transaction first takes a transaction-scoped
// advisory lock on it, which serializes check-and-insert sequences for the
// same room across every application instance. The lock is released by
// commit or rollback.
type PostgresRunner struct {
	db        *sql.DB
	isolation sql.IsolationLevel
}

// PostgresOption configures a PostgresRunner.
type PostgresOption func(*PostgresRunner)

// WithIsolation overrides the default read-committed isolation level.
func WithIsolation(level sql.IsolationLevel) PostgresOption {
	return func(r *PostgresRunner) {
		r.isolation = level
	}
}

func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresRunner {
	r := &PostgresRunner{db: db, isolation: sql.LevelReadCommitted}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PostgresRunner) RunInTx(ctx context.Context, key string, fn func(ctx context.Context) error) (err error) {
	// Nested calls join the outer transaction.
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}

	sqlTx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: r.isolation})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("rolling back transaction: %v (original error: %w)", rbErr, err)
			}
		}
	}()

	if key != "" {
		if _, err = sqlTx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("acquire advisory lock: %w", err)
		}
	}

	if err = fn(WithTx(ctx, sqlTx)); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
