// Package store defines the ledger storage port implemented by the
// SQLite repository and the in-memory store.
package store

import (
	"context"
	"errors"

	"expensed/internal/core"
)

// ErrUnavailable marks failures of the storage backend itself, as
// opposed to caller mistakes. Handlers use it to tell "try again later"
// apart from "fix your input".
var ErrUnavailable = errors.New("expense store unavailable")

// Ledger is the durable collection of expense records. Implementations
// must be safe for concurrent use; each operation is individually
// atomic and reads observe the latest committed write.
type Ledger interface {
	// InsertForDate persists every entry as a new record for the date
	// and returns the created records in submission order. The batch is
	// atomic: if any entry is rejected nothing is persisted.
	InsertForDate(ctx context.Context, date core.Date, entries []core.Entry) ([]core.Expense, error)

	// FetchByDate returns all records for the date ordered by ID
	// ascending. No records is an empty slice, not an error.
	FetchByDate(ctx context.Context, date core.Date) ([]core.Expense, error)

	// DeleteByDate removes every record for the date and returns how
	// many were removed. Zero is a valid result.
	DeleteByDate(ctx context.Context, date core.Date) (int64, error)

	// AggregateByCategory sums amounts per category over the inclusive
	// range [start, end], ordered by total descending then category
	// ascending. Categories with no records are omitted. Returns
	// core.ErrInvalidRange when start > end.
	AggregateByCategory(ctx context.Context, start, end core.Date) ([]core.CategoryTotal, error)
}
