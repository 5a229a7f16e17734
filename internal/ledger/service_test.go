package ledger

import (
	"context"
	"errors"
	"testing"

	"expensed/internal/amqp"
	"expensed/internal/core"
	"expensed/internal/store/memory"
)

type fakePublisher struct {
	events []*amqp.LedgerEvent
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, ev *amqp.LedgerEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func TestInsertPublishesPerRecord(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewService(memory.New(), pub)
	date := core.NewDate(2025, 12, 7)

	created, err := svc.InsertForDate(context.Background(), date, []core.Entry{
		{Category: "Food", Amount: core.Money{Cents: 100}},
		{Category: "Transport", Amount: core.Money{Cents: 200}},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(pub.events) != 2 {
		t.Fatalf("published %d events, want 2", len(pub.events))
	}
	for i, ev := range pub.events {
		if ev.Kind != amqp.KindExpenseRecorded {
			t.Fatalf("event %d kind = %s, want %s", i, ev.Kind, amqp.KindExpenseRecorded)
		}
		if ev.ID != created[i].ID {
			t.Fatalf("event %d id = %d, want %d", i, ev.ID, created[i].ID)
		}
	}
}

func TestInsertValidationShortCircuits(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewService(memory.New(), pub)
	date := core.NewDate(2025, 12, 7)

	_, err := svc.InsertForDate(context.Background(), date, []core.Entry{
		{Category: "  ", Amount: core.Money{Cents: 100}},
	})
	if !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("error = %v, want ErrEmptyCategory", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("published %d events on rejected insert", len(pub.events))
	}
	got, _ := svc.FetchByDate(context.Background(), date)
	if len(got) != 0 {
		t.Fatalf("rejected insert persisted %d records", len(got))
	}
}

func TestInsertSurvivesPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewService(memory.New(), pub)
	date := core.NewDate(2025, 12, 7)

	created, err := svc.InsertForDate(context.Background(), date, []core.Entry{
		{Category: "Food", Amount: core.Money{Cents: 100}},
	})
	if err != nil {
		t.Fatalf("insert failed on publish error: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d records, want 1", len(created))
	}
}

func TestDeletePublishesOnlyWhenRecordsRemoved(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewService(memory.New(), pub)
	date := core.NewDate(2025, 12, 7)

	deleted, err := svc.DeleteByDate(context.Background(), date)
	if err != nil {
		t.Fatalf("delete empty: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted = %d, want 0", deleted)
	}
	if len(pub.events) != 0 {
		t.Fatalf("published %d events for empty delete", len(pub.events))
	}

	if _, err := svc.InsertForDate(context.Background(), date, []core.Entry{
		{Category: "Food", Amount: core.Money{Cents: 100}},
		{Category: "Food", Amount: core.Money{Cents: 200}},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	pub.events = nil

	deleted, err = svc.DeleteByDate(context.Background(), date)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}
	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Kind != amqp.KindDateCleared || ev.Date != "2025-12-07" || ev.Count != 2 {
		t.Fatalf("clearance event = %+v", ev)
	}
}

func TestSummarize(t *testing.T) {
	svc := NewService(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.InsertForDate(ctx, core.NewDate(2025, 12, 7), []core.Entry{
		{Category: "Food", Amount: core.Money{Cents: 25050}},
		{Category: "Transport", Amount: core.Money{Cents: 10000}},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	report, err := svc.Summarize(ctx, core.NewDate(2025, 12, 1), core.NewDate(2025, 12, 7))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if report.NoData {
		t.Fatal("report marked NoData with records in range")
	}
	if report.TotalSpent.Cents != 35050 {
		t.Fatalf("total = %d, want 35050", report.TotalSpent.Cents)
	}
	if report.TopCategory != "Food" {
		t.Fatalf("top category = %s, want Food", report.TopCategory)
	}
	if got := report.DailyAverage.String(); got != "50.07" {
		t.Fatalf("daily average = %s, want 50.07", got)
	}
}

type pingableStore struct {
	*memory.Store
	pinged  bool
	pingErr error
}

func (p *pingableStore) Ping(_ context.Context) error {
	p.pinged = true
	return p.pingErr
}

func TestPingForwardsToStore(t *testing.T) {
	st := &pingableStore{Store: memory.New(), pingErr: errors.New("db down")}
	svc := NewService(st, nil)

	if err := svc.Ping(context.Background()); !errors.Is(err, st.pingErr) {
		t.Fatalf("error = %v, want store ping error", err)
	}
	if !st.pinged {
		t.Fatal("store Ping was not called")
	}
}

func TestPingWithoutStoreProbe(t *testing.T) {
	svc := NewService(memory.New(), nil)
	if err := svc.Ping(context.Background()); err != nil {
		t.Fatalf("ping on memory store = %v, want nil", err)
	}
}
