package core

import "testing"

func TestBuildReportWorkedExample(t *testing.T) {
	// Food 250.50 + Transport 100.00 over a 7-day range.
	totals := []CategoryTotal{
		{Category: "Transport", Total: Money{Cents: 10000}},
		{Category: "Food", Total: Money{Cents: 25050}},
	}
	r := BuildReport(NewDate(2025, 12, 1), NewDate(2025, 12, 7), totals)

	if r.NoData {
		t.Fatalf("unexpected NoData")
	}
	if r.TotalSpent.Cents != 35050 {
		t.Fatalf("TotalSpent = %d cents, want 35050", r.TotalSpent.Cents)
	}
	if r.TopCategory != "Food" {
		t.Fatalf("TopCategory = %q, want Food", r.TopCategory)
	}
	if got := r.DailyAverage.StringFixed(2); got != "50.07" {
		t.Fatalf("DailyAverage = %s, want 50.07", got)
	}

	// Categories come back sorted by total descending.
	if r.Categories[0].Category != "Food" || r.Categories[1].Category != "Transport" {
		t.Fatalf("unexpected category order: %+v", r.Categories)
	}
	if got := r.Categories[0].Share.StringFixed(2); got != "71.47" {
		t.Fatalf("Food share = %s, want 71.47", got)
	}
	if got := r.Categories[1].Share.StringFixed(2); got != "28.53" {
		t.Fatalf("Transport share = %s, want 28.53", got)
	}
}

func TestBuildReportSingleDayRange(t *testing.T) {
	totals := []CategoryTotal{{Category: "Food", Total: Money{Cents: 25050}}}
	r := BuildReport(NewDate(2025, 12, 7), NewDate(2025, 12, 7), totals)

	// Divisor is 1, so the daily average equals the day total exactly.
	if got := r.DailyAverage.StringFixed(2); got != "250.50" {
		t.Fatalf("DailyAverage = %s, want 250.50", got)
	}
}

func TestBuildReportNoData(t *testing.T) {
	r := BuildReport(NewDate(2025, 1, 1), NewDate(2025, 1, 31), nil)
	if !r.NoData {
		t.Fatalf("expected NoData for empty range")
	}
	if r.TotalSpent.Cents != 0 || r.TopCategory != "" || len(r.Categories) != 0 {
		t.Fatalf("NoData report should carry no metrics: %+v", r)
	}
}

func TestBuildReportTieBreakDeterministic(t *testing.T) {
	// Equal totals: the lexicographically smaller category wins,
	// regardless of input order.
	a := []CategoryTotal{
		{Category: "Transport", Total: Money{Cents: 5000}},
		{Category: "Food", Total: Money{Cents: 5000}},
	}
	b := []CategoryTotal{
		{Category: "Food", Total: Money{Cents: 5000}},
		{Category: "Transport", Total: Money{Cents: 5000}},
	}
	start, end := NewDate(2025, 6, 1), NewDate(2025, 6, 30)

	ra := BuildReport(start, end, a)
	rb := BuildReport(start, end, b)
	if ra.TopCategory != "Food" || rb.TopCategory != "Food" {
		t.Fatalf("tie-break not deterministic: %q vs %q", ra.TopCategory, rb.TopCategory)
	}
}

func TestBuildReportNoFloatDrift(t *testing.T) {
	// 1000 entries of 0.10 must sum to exactly 100.00; with float64
	// accumulation this drifts below it.
	totals := []CategoryTotal{{Category: "Food", Total: Money{Cents: 1000 * 10}}}
	r := BuildReport(NewDate(2025, 1, 1), NewDate(2025, 1, 1), totals)

	if got := r.TotalSpent.String(); got != "100.00" {
		t.Fatalf("TotalSpent = %s, want 100.00", got)
	}
	if got := r.DailyAverage.StringFixed(2); got != "100.00" {
		t.Fatalf("DailyAverage = %s, want 100.00", got)
	}
}
