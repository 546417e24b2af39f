package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("movistock/db")

// TxOptions configures transaction behavior.
type TxOptions struct {
	IsolationLevel pgx.TxIsoLevel

	// StatementTimeout protects against long-running queries (default 30s)
	StatementTimeout time.Duration
}

// DefaultTxOptions returns production-safe defaults.
func DefaultTxOptions() TxOptions {
	return TxOptions{
		IsolationLevel:   pgx.ReadCommitted,
		StatementTimeout: 30 * time.Second,
	}
}

// TxRunner executes functions inside database transactions with
// statement timeout protection and tracing spans.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner creates a transaction runner.
func NewTxRunner(pool *Pool) *TxRunner {
	return &TxRunner{pool: pool.Pool}
}

// RunInTx executes fn within a transaction, committing on success and
// rolling back on error or panic.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return r.RunInTxWithOptions(ctx, DefaultTxOptions(), fn)
}

// RunInTxWithOptions executes fn with custom transaction options.
func (r *TxRunner) RunInTxWithOptions(ctx context.Context, opts TxOptions, fn func(ctx context.Context, tx pgx.Tx) error) error {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(
			attribute.String("tx.isolation", string(opts.IsolationLevel)),
		))
	defer span.End()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel: opts.IsolationLevel,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if opts.StatementTimeout > 0 {
		_, err = tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", opts.StatementTimeout.Milliseconds()))
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	if err := execWithRollbackProtection(ctx, tx, fn); err != nil {
		span.RecordError(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// execWithRollbackProtection runs fn and guarantees rollback on error
// or panic.
func execWithRollbackProtection(ctx context.Context, tx pgx.Tx, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return nil
}
