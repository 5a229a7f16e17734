// Package core holds the expense ledger domain: calendar dates,
// fixed-point money, expense records, and range summaries.
//
// Amounts are carried as integer cents everywhere. Decimal parsing and
// the derived summary arithmetic go through shopspring/decimal so that
// no binary floating-point rounding ever reaches a stored or reported
// total.
package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal amount string to cents.
//
// Anything past the second fractional digit is rounded half-up, matching
// how amounts were rounded at the edge historically. The result must be
// strictly positive.
//
//	ParseAmount("12.34")  -> 1234
//	ParseAmount("12.345") -> 1235
//	ParseAmount("-1")     -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Mul(decimal.NewFromInt(100)).Round(0)
	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return Money{}, ErrInvalidAmount
	}
	m := Money{Cents: cents.IntPart()}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// Decimal returns the amount as an exact decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON emits the amount as a plain JSON number with two
// fractional digits, e.g. 250.50. The textual form is exact, so a
// JSON round-trip preserves the amount to the cent.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		raw = json.Number(s)
	}
	parsed, err := ParseAmount(raw.String())
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
