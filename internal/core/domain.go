package core

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type (
	// Date is a calendar date with no time component, always UTC midnight.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Entry is an expense submitted for insertion, before the store
	// assigns an ID.
	Entry struct {
		Category string
		Notes    string
		Amount   Money
	}

	// Expense is a persisted ledger record. Records are immutable; the
	// only mutation the ledger supports is deleting every record that
	// shares one expense date.
	Expense struct {
		ID       int64
		Date     Date
		Category string
		Notes    string
		Amount   Money
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCategory   = errors.New("empty category")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidRange    = errors.New("start date after end date")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD). Dates that do not
// exist on the calendar (2025-02-30) are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Before reports whether d falls before other on the calendar.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// DaysUntil returns the number of days in the inclusive range [d, end].
// A single-day range yields 1.
func (d Date) DaysUntil(end Date) int64 {
	return int64(end.Sub(d.Time).Hours()/24) + 1
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	// Notes are required but may be empty free text.
	return nil
}
