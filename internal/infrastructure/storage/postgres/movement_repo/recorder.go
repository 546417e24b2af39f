// Package movement_repo persists submitted movements to PostgreSQL.
package movement_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"movistock/internal/core/id"
	"movistock/internal/core/types"
	"movistock/internal/domain/movement"
	"movistock/internal/infrastructure/storage/postgres"
)

const (
	movementTable = "doc_movements"
	lineTable     = "doc_movement_lines"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Recorder implements movement.Recorder: it persists the movement
// header, its lines and a journal entry in one transaction.
type Recorder struct {
	runner  *postgres.TxRunner
	journal *postgres.Journal
}

// NewRecorder creates a PostgreSQL-backed movement recorder.
func NewRecorder(runner *postgres.TxRunner, journal *postgres.Journal) *Recorder {
	return &Recorder{
		runner:  runner,
		journal: journal,
	}
}

var _ movement.Recorder = (*Recorder)(nil)

// Record implements movement.Recorder.
func (r *Recorder) Record(ctx context.Context, form *movement.MovementForm) (id.ID, error) {
	movementID := id.New()
	now := time.Now().UTC()

	err := r.runner.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.insertHeader(ctx, tx, movementID, form, now); err != nil {
			return err
		}
		if err := r.insertLines(ctx, tx, movementID, form.Items.Items()); err != nil {
			return err
		}
		return r.journal.Append(ctx, tx, movementID, string(form.Type), form)
	})
	if err != nil {
		return id.ID{}, fmt.Errorf("record movement: %w", err)
	}

	return movementID, nil
}

func (r *Recorder) insertHeader(ctx context.Context, tx pgx.Tx, movementID id.ID, form *movement.MovementForm, now time.Time) error {
	sql, args, err := qb.Insert(movementTable).
		Columns("id", "movement_type", "movement_date", "invoice_number", "supplier", "exit_reason", "total", "created_at").
		Values(movementID, string(form.Type), form.Date, form.InvoiceNumber, form.Supplier, form.ExitReason, form.Total, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("build movement insert: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *Recorder) insertLines(ctx context.Context, tx pgx.Tx, movementID id.ID, items []movement.LineItem) error {
	builder := qb.Insert(lineTable).
		Columns("movement_id", "line_no", "product_id", "lot_code", "expiry_date", "quantity", "unit", "unit_price", "subtotal")

	for _, item := range items {
		builder = builder.Values(
			movementID,
			item.Position,
			item.ProductID,
			item.LotCode,
			item.ExpiryDate,
			types.ParseAmount(item.Quantity),
			item.Unit,
			types.ParseAmount(item.UnitPrice),
			item.Subtotal,
		)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}
	return nil
}
