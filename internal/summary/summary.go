// Package summary aggregates expenses per category.
package summary

import (
	"expenses/internal/core"
)

// Report is a per-category summary of one date range.
type Report struct {
	Range      core.DateRange
	Categories []core.CategorySummary
	Total      float64
}

// Total sums every amount in records.
func Total(records []core.Expense) float64 {
	var total float64
	for _, e := range records {
		total += e.Amount
	}
	return total
}

// Summarize groups records by category. Only categories that occur are
// returned, in menu order. PercentOfTotal is 0 when the total is 0.
func Summarize(records []core.Expense) []core.CategorySummary {
	total := Total(records)
	byCategory := make(map[core.Category]*core.CategorySummary)
	for _, e := range records {
		s, ok := byCategory[e.Category]
		if !ok {
			s = &core.CategorySummary{Category: e.Category, Max: e.Amount}
			byCategory[e.Category] = s
		}
		s.Count++
		s.Sum += e.Amount
		if e.Amount > s.Max {
			s.Max = e.Amount
		}
	}

	out := make([]core.CategorySummary, 0, len(byCategory))
	for _, c := range core.Categories() {
		s, ok := byCategory[c]
		if !ok {
			continue
		}
		s.Mean = s.Sum / float64(s.Count)
		if total != 0 {
			s.PercentOfTotal = 100 * s.Sum / total
		}
		out = append(out, *s)
	}
	return out
}

// BuildReport summarizes records, which are expected to fall within r.
func BuildReport(r core.DateRange, records []core.Expense) Report {
	return Report{
		Range:      r,
		Categories: Summarize(records),
		Total:      Total(records),
	}
}
