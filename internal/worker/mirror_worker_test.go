package worker

import (
	"context"
	"errors"
	"testing"

	"expensed/internal/amqp"
	"expensed/internal/core"
)

type fakeFetcher struct {
	records map[int64]core.Expense
	err     error
}

func (f *fakeFetcher) GetByID(_ context.Context, id int64) (*core.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &rec, nil
}

type fakeMirror struct {
	expenses   []core.Expense
	clearances []string
	err        error
}

func (m *fakeMirror) AppendExpense(_ context.Context, rec core.Expense) error {
	if m.err != nil {
		return m.err
	}
	m.expenses = append(m.expenses, rec)
	return nil
}

func (m *fakeMirror) AppendClearance(_ context.Context, date string, _ int64) error {
	if m.err != nil {
		return m.err
	}
	m.clearances = append(m.clearances, date)
	return nil
}

func TestHandleRecordedEvent(t *testing.T) {
	rec := core.Expense{
		ID:       7,
		Date:     core.NewDate(2025, 12, 7),
		Category: "Food",
		Notes:    "Lunch",
		Amount:   core.Money{Cents: 25050},
	}
	fetcher := &fakeFetcher{records: map[int64]core.Expense{7: rec}}
	mirror := &fakeMirror{}
	w := NewMirrorWorker(fetcher, mirror)

	if err := w.HandleEvent(context.Background(), amqp.NewExpenseRecordedEvent(7)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mirror.expenses) != 1 {
		t.Fatalf("mirrored %d expenses, want 1", len(mirror.expenses))
	}
	if mirror.expenses[0].ID != 7 || mirror.expenses[0].Amount.Cents != 25050 {
		t.Fatalf("mirrored record = %+v", mirror.expenses[0])
	}
}

func TestHandleClearedEvent(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(&fakeFetcher{}, mirror)

	if err := w.HandleEvent(context.Background(), amqp.NewDateClearedEvent("2025-12-07", 3)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mirror.clearances) != 1 || mirror.clearances[0] != "2025-12-07" {
		t.Fatalf("clearances = %v", mirror.clearances)
	}
}

func TestHandleUnknownKindDropped(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(&fakeFetcher{}, mirror)

	ev := &amqp.LedgerEvent{Kind: "expense.updated"}
	if err := w.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("unknown kind must not requeue: %v", err)
	}
	if len(mirror.expenses) != 0 || len(mirror.clearances) != 0 {
		t.Fatal("unknown kind reached the mirror")
	}
}

func TestHandleRecordedFetchFailureRequeues(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("db down")}
	w := NewMirrorWorker(fetcher, &fakeMirror{})

	if err := w.HandleEvent(context.Background(), amqp.NewExpenseRecordedEvent(1)); err == nil {
		t.Fatal("expected error so the event is requeued")
	}
}

func TestHandleMirrorFailureRequeues(t *testing.T) {
	mirror := &fakeMirror{err: errors.New("sheets quota")}
	w := NewMirrorWorker(&fakeFetcher{}, mirror)

	if err := w.HandleEvent(context.Background(), amqp.NewDateClearedEvent("2025-12-07", 1)); err == nil {
		t.Fatal("expected error so the event is requeued")
	}
}
