package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed amount for one category over a date range.
type CategoryTotal struct {
	Category string
	Total    Money
}

// CategoryShare extends a category total with its percentage of the
// range's overall spend.
type CategoryShare struct {
	Category string
	Total    Money
	Share    decimal.Decimal // percent, two fractional digits
}

// Report is the derived view over a range aggregation: overall spend,
// the dominant category, and the per-day average.
type Report struct {
	Start        Date
	End          Date
	NoData       bool
	TotalSpent   Money
	TopCategory  string
	DailyAverage decimal.Decimal // two fractional digits
	Categories   []CategoryShare
}

// SortTotals orders category totals by amount descending, breaking ties
// by category name ascending. The ordering is deterministic so the top
// category for a given input never depends on map or query iteration
// order.
func SortTotals(totals []CategoryTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total.Cents != totals[j].Total.Cents {
			return totals[i].Total.Cents > totals[j].Total.Cents
		}
		return totals[i].Category < totals[j].Category
	})
}

// BuildReport computes the derived metrics for an inclusive date range
// from its category totals. The range must already be validated
// (start <= end); totals may arrive in any order.
//
// When the range holds no spending the report short-circuits with
// NoData set instead of producing undefined ratios.
func BuildReport(start, end Date, totals []CategoryTotal) Report {
	r := Report{Start: start, End: end}

	var totalCents int64
	for _, t := range totals {
		totalCents += t.Total.Cents
	}
	if totalCents == 0 {
		r.NoData = true
		return r
	}

	sorted := make([]CategoryTotal, len(totals))
	copy(sorted, totals)
	SortTotals(sorted)

	r.TotalSpent = Money{Cents: totalCents}
	r.TopCategory = sorted[0].Category

	days := start.DaysUntil(end)
	total := r.TotalSpent.Decimal()
	r.DailyAverage = total.Div(decimal.NewFromInt(days)).Round(2)

	hundred := decimal.NewFromInt(100)
	r.Categories = make([]CategoryShare, 0, len(sorted))
	for _, t := range sorted {
		r.Categories = append(r.Categories, CategoryShare{
			Category: t.Category,
			Total:    t.Total,
			Share:    t.Total.Decimal().Div(total).Mul(hundred).Round(2),
		})
	}
	return r
}
