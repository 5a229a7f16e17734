// Package worker consumes ledger events and mirrors them to the audit
// spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"expensed/internal/amqp"
	"expensed/internal/core"
	applog "expensed/internal/log"
)

// RecordFetcher resolves the expense IDs carried in lightweight
// recorded events. Implemented by storage.SQLiteRepository.
type RecordFetcher interface {
	GetByID(ctx context.Context, id int64) (*core.Expense, error)
}

// Mirror receives ledger changes. Implemented by mirror.SheetsMirror.
type Mirror interface {
	AppendExpense(ctx context.Context, rec core.Expense) error
	AppendClearance(ctx context.Context, date string, count int64) error
}

type MirrorWorker struct {
	records RecordFetcher
	mirror  Mirror
}

func NewMirrorWorker(records RecordFetcher, mirror Mirror) *MirrorWorker {
	return &MirrorWorker{records: records, mirror: mirror}
}

// HandleEvent processes one ledger event. Returning an error requeues
// the event for another attempt.
func (w *MirrorWorker) HandleEvent(ctx context.Context, ev *amqp.LedgerEvent) error {
	switch ev.Kind {
	case amqp.KindExpenseRecorded:
		return w.handleRecorded(ctx, ev)
	case amqp.KindDateCleared:
		return w.handleCleared(ctx, ev)
	default:
		// Unknown kinds are dropped, not requeued: a newer producer may
		// emit kinds this worker predates.
		slog.WarnContext(ctx, "Dropping ledger event of unknown kind", "kind", ev.Kind)
		return nil
	}
}

func (w *MirrorWorker) handleRecorded(ctx context.Context, ev *amqp.LedgerEvent) error {
	rec, err := w.records.GetByID(ctx, ev.ID)
	if err != nil {
		return fmt.Errorf("resolve recorded expense: %w", err)
	}

	if err := w.mirror.AppendExpense(ctx, *rec); err != nil {
		return fmt.Errorf("mirror recorded expense: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored expense",
		applog.FieldExpenseID, rec.ID,
		applog.FieldDate, rec.Date.String(),
		applog.FieldCategory, rec.Category,
		applog.FieldAmountCents, rec.Amount.Cents)
	return nil
}

func (w *MirrorWorker) handleCleared(ctx context.Context, ev *amqp.LedgerEvent) error {
	if err := w.mirror.AppendClearance(ctx, ev.Date, ev.Count); err != nil {
		return fmt.Errorf("mirror date clearance: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored date clearance",
		applog.FieldDate, ev.Date,
		applog.FieldDeletedCount, ev.Count)
	return nil
}
