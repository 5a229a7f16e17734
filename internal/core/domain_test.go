package core

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-12-07", true},
		{" 2025-01-01 ", true},
		{"2025-02-30", false}, // not a real calendar date
		{"2025-13-01", false},
		{"07-12-2025", false},
		{"not-a-date", false},
		{"", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseDate(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseDate(%q) expected error", tc.in)
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidDate", tc.in, err)
			}
			continue
		}
		if d.IsZero() {
			t.Fatalf("ParseDate(%q) returned zero date", tc.in)
		}
	}
}

func TestDateString(t *testing.T) {
	d := NewDate(2025, 12, 7)
	if got := d.String(); got != "2025-12-07" {
		t.Fatalf("String() = %q, want 2025-12-07", got)
	}
}

func TestDaysUntil(t *testing.T) {
	cases := []struct {
		start, end Date
		want       int64
	}{
		{NewDate(2025, 12, 1), NewDate(2025, 12, 7), 7},
		{NewDate(2025, 12, 7), NewDate(2025, 12, 7), 1}, // single-day range
		{NewDate(2025, 2, 27), NewDate(2025, 3, 2), 4},  // across month end
	}
	for _, tc := range cases {
		if got := tc.start.DaysUntil(tc.end); got != tc.want {
			t.Fatalf("DaysUntil(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestEntryValidate(t *testing.T) {
	good := Entry{Category: "Food", Notes: "Lunch", Amount: Money{Cents: 2550}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Empty notes are allowed; notes are free text.
	noNotes := Entry{Category: "Food", Amount: Money{Cents: 100}}
	if err := noNotes.Validate(); err != nil {
		t.Fatalf("expected ok with empty notes, got %v", err)
	}

	cases := []struct {
		e    Entry
		want error
	}{
		{Entry{Category: "", Amount: Money{Cents: 100}}, ErrEmptyCategory},
		{Entry{Category: "  ", Amount: Money{Cents: 100}}, ErrEmptyCategory},
		{Entry{Category: "Food", Amount: Money{Cents: 0}}, ErrInvalidAmount},
		{Entry{Category: "Food", Amount: Money{Cents: -500}}, ErrInvalidAmount},
	}
	for i, tc := range cases {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: error = %v, want %v", i, err, tc.want)
		}
	}
}
