// Package ledger orchestrates the expense store and the ledger event
// feed. All writes flow through the Service so events are published
// only after the store has committed.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"expensed/internal/amqp"
	"expensed/internal/core"
	applog "expensed/internal/log"
	"expensed/internal/store"
)

// EventPublisher is the outbound feed for ledger change notifications.
type EventPublisher interface {
	PublishEvent(ctx context.Context, ev *amqp.LedgerEvent) error
}

// Service wraps a ledger store with event publishing. The publisher is
// optional; without one the service is a plain pass-through.
type Service struct {
	store  store.Ledger
	events EventPublisher
}

func NewService(st store.Ledger, events EventPublisher) *Service {
	return &Service{store: st, events: events}
}

// InsertForDate validates the batch, persists it atomically, and
// announces each created record on the event feed. A publish failure
// does not fail the request; the records are already committed.
func (s *Service) InsertForDate(ctx context.Context, date core.Date, entries []core.Entry) ([]core.Expense, error) {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	created, err := s.store.InsertForDate(ctx, date, entries)
	if err != nil {
		return nil, fmt.Errorf("insert expenses: %w", err)
	}

	for _, rec := range created {
		s.publish(ctx, amqp.NewExpenseRecordedEvent(rec.ID))
	}
	return created, nil
}

func (s *Service) FetchByDate(ctx context.Context, date core.Date) ([]core.Expense, error) {
	return s.store.FetchByDate(ctx, date)
}

// DeleteByDate removes every record for the date and announces the
// clearance when anything was actually removed.
func (s *Service) DeleteByDate(ctx context.Context, date core.Date) (int64, error) {
	deleted, err := s.store.DeleteByDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("delete expenses: %w", err)
	}

	if deleted > 0 {
		s.publish(ctx, amqp.NewDateClearedEvent(date.String(), deleted))
	}
	return deleted, nil
}

func (s *Service) AggregateByCategory(ctx context.Context, start, end core.Date) ([]core.CategoryTotal, error) {
	return s.store.AggregateByCategory(ctx, start, end)
}

// Summarize aggregates the range and derives the report metrics.
func (s *Service) Summarize(ctx context.Context, start, end core.Date) (core.Report, error) {
	totals, err := s.store.AggregateByCategory(ctx, start, end)
	if err != nil {
		return core.Report{}, fmt.Errorf("summarize range: %w", err)
	}
	return core.BuildReport(start, end, totals), nil
}

// Ping probes the underlying store's connectivity. Stores without their
// own probe (the in-memory one) are always reachable.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, ev *amqp.LedgerEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", ev.Kind,
			applog.FieldExpenseID, ev.ID,
			applog.FieldDate, ev.Date,
			applog.FieldError, err)
	}
}

var _ store.Ledger = (*Service)(nil)
