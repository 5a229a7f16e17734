package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"250.50", 25050, true},
		{"0.01", 1, true},
		{"100", 10000, true},
		{"12.345", 1235, true}, // half-up on the third decimal
		{"12.344", 1234, true},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5.00", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		m, err := ParseAmount(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseAmount(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseAmount(%q) expected error", tc.in)
			}
			continue
		}
		if m.Cents != tc.cents {
			t.Fatalf("ParseAmount(%q) = %d cents, want %d", tc.in, m.Cents, tc.cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{25050, "250.50"},
		{1, "0.01"},
		{100, "1.00"},
		{-1234, "-12.34"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	// Marshal emits an exact 2-dp number, not a binary float.
	b, err := json.Marshal(Money{Cents: 25050})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "250.50" {
		t.Fatalf("marshal = %s, want 250.50", b)
	}

	var m Money
	if err := json.Unmarshal([]byte("100.10"), &m); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if m.Cents != 10010 {
		t.Fatalf("unmarshal number = %d cents, want 10010", m.Cents)
	}

	if err := json.Unmarshal([]byte(`"35.00"`), &m); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if m.Cents != 3500 {
		t.Fatalf("unmarshal string = %d cents, want 3500", m.Cents)
	}

	if err := json.Unmarshal([]byte("-10"), &m); err == nil {
		t.Fatalf("expected error for negative amount")
	}
}
