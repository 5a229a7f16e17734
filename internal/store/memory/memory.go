// Package memory provides an in-memory ledger used by the dev backend
// and as a test substitute for the SQLite repository.
package memory

import (
	"context"
	"sync"

	"expensed/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
}

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) InsertForDate(ctx context.Context, date core.Date, entries []core.Entry) ([]core.Expense, error) {
	// Validate the whole batch before touching state so a bad entry
	// cannot leave a partial insert behind.
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]core.Expense, 0, len(entries))
	for _, e := range entries {
		rec := core.Expense{
			ID:       s.nextID,
			Date:     date,
			Category: e.Category,
			Notes:    e.Notes,
			Amount:   e.Amount,
		}
		s.nextID++ // IDs are never reused, even after deletion
		s.items = append(s.items, rec)
		created = append(created, rec)
	}
	return created, nil
}

func (s *Store) FetchByDate(ctx context.Context, date core.Date) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []core.Expense{}
	for _, rec := range s.items {
		if rec.Date.Equal(date.Time) {
			out = append(out, rec)
		}
	}
	// items grows append-only, so insertion order is ID order already.
	return out, nil
}

func (s *Store) DeleteByDate(ctx context.Context, date core.Date) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	var deleted int64
	for _, rec := range s.items {
		if rec.Date.Equal(date.Time) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	s.items = kept
	return deleted, nil
}

func (s *Store) AggregateByCategory(ctx context.Context, start, end core.Date) ([]core.CategoryTotal, error) {
	if end.Before(start) {
		return nil, core.ErrInvalidRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sums := map[string]int64{}
	for _, rec := range s.items {
		if rec.Date.Before(start) || end.Before(rec.Date) {
			continue
		}
		sums[rec.Category] += rec.Amount.Cents
	}

	totals := make([]core.CategoryTotal, 0, len(sums))
	for cat, cents := range sums {
		totals = append(totals, core.CategoryTotal{Category: cat, Total: core.Money{Cents: cents}})
	}
	core.SortTotals(totals)
	return totals, nil
}
