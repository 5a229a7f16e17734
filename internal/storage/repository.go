// Package storage implements the ledger store on SQLite.
//
// Dates are stored as ISO YYYY-MM-DD text, so BETWEEN comparisons order
// correctly, and amounts as integer cents. The expenses table uses
// AUTOINCREMENT so record IDs are never reused after a date-scoped
// delete.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"expensed/internal/core"
	applog "expensed/internal/log"
	"expensed/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// unavailable tags a database failure with store.ErrUnavailable while
// keeping the original error in the chain.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(store.ErrUnavailable, err))
}

// InsertForDate implements store.Ledger. The batch runs in one
// transaction; any failure rolls the whole insert back.
func (r *SQLiteRepository) InsertForDate(ctx context.Context, date core.Date, entries []core.Entry) ([]core.Expense, error) {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("begin insert tx", err)
	}
	defer tx.Rollback()

	created := make([]core.Expense, 0, len(entries))
	for _, e := range entries {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (expense_date, category, notes, amount_cents) VALUES (?, ?, ?, ?)`,
			date.String(), e.Category, e.Notes, e.Amount.Cents)
		if err != nil {
			return nil, unavailable("insert expense", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, unavailable("read inserted id", err)
		}
		created = append(created, core.Expense{
			ID:       id,
			Date:     date,
			Category: e.Category,
			Notes:    e.Notes,
			Amount:   e.Amount,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, unavailable("commit insert tx", err)
	}

	slog.InfoContext(ctx, "Expenses saved",
		applog.FieldOperation, applog.OpInsert,
		applog.FieldDate, date.String(),
		applog.FieldBatchSize, len(created))
	return created, nil
}

// FetchByDate implements store.Ledger.
func (r *SQLiteRepository) FetchByDate(ctx context.Context, date core.Date) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, expense_date, category, notes, amount_cents FROM expenses WHERE expense_date = ? ORDER BY id ASC`,
		date.String())
	if err != nil {
		return nil, unavailable("fetch expenses by date", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var (
			rec     core.Expense
			rawDate string
		)
		if err := rows.Scan(&rec.ID, &rawDate, &rec.Category, &rec.Notes, &rec.Amount.Cents); err != nil {
			return nil, unavailable("scan expense row", err)
		}
		rec.Date, err = core.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", rawDate, err)
		}
		expenses = append(expenses, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate expense rows", err)
	}

	slog.DebugContext(ctx, "Expenses fetched",
		applog.FieldOperation, applog.OpFetch,
		applog.FieldDate, date.String(),
		applog.FieldBatchSize, len(expenses))
	return expenses, nil
}

// DeleteByDate implements store.Ledger.
func (r *SQLiteRepository) DeleteByDate(ctx context.Context, date core.Date) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE expense_date = ?`, date.String())
	if err != nil {
		return 0, unavailable("delete expenses by date", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable("read deleted count", err)
	}

	slog.InfoContext(ctx, "Expenses deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldDate, date.String(),
		applog.FieldDeletedCount, deleted)
	return deleted, nil
}

// AggregateByCategory implements store.Ledger.
func (r *SQLiteRepository) AggregateByCategory(ctx context.Context, start, end core.Date) ([]core.CategoryTotal, error) {
	if end.Before(start) {
		return nil, core.ErrInvalidRange
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents) AS total_cents
		 FROM expenses
		 WHERE expense_date BETWEEN ? AND ?
		 GROUP BY category
		 ORDER BY total_cents DESC, category ASC`,
		start.String(), end.String())
	if err != nil {
		return nil, unavailable("aggregate expenses by category", err)
	}
	defer rows.Close()

	totals := []core.CategoryTotal{}
	for rows.Next() {
		var t core.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total.Cents); err != nil {
			return nil, unavailable("scan category total", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate category totals", err)
	}

	slog.DebugContext(ctx, "Expenses aggregated",
		applog.FieldOperation, applog.OpAggregate,
		applog.FieldStartDate, start.String(),
		applog.FieldEndDate, end.String())
	return totals, nil
}

// GetByID retrieves a single expense record. Used by the mirror worker
// to resolve the lightweight IDs carried in ledger events.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*core.Expense, error) {
	var (
		rec     core.Expense
		rawDate string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, expense_date, category, notes, amount_cents FROM expenses WHERE id = ?`, id).
		Scan(&rec.ID, &rawDate, &rec.Category, &rec.Notes, &rec.Amount.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %d not found", id)
	}
	if err != nil {
		return nil, unavailable("get expense by id", err)
	}
	rec.Date, err = core.ParseDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("stored date %q: %w", rawDate, err)
	}
	return &rec, nil
}

// Ping verifies connectivity for health checks.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

var _ store.Ledger = (*SQLiteRepository)(nil)
