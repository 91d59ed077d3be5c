// Package analytics computes totals, breakdowns and time series over the
// expense ledger. Every function is pure and recomputes from its input.
package analytics

import (
	"sort"
	"time"

	"github.com/Veraticus/spendwise/internal/model"
)

// ChartTopN is the number of categories shown in the category chart.
const ChartTopN = 8

// Total sums the amounts of expenses.
func Total(expenses []model.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return sum
}

// MonthTotal sums the expenses dated in the YYYY-MM month.
func MonthTotal(expenses []model.Expense, monthKey string) float64 {
	var sum float64
	for _, e := range expenses {
		if e.Date.HasMonthPrefix(monthKey) {
			sum += e.Amount
		}
	}
	return sum
}

// Percent returns part/whole*100, or 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// MonthSnapshot compares the current calendar month with the previous one.
type MonthSnapshot struct {
	Month         string
	PreviousMonth string
	Current       float64
	Previous      float64
	ChangePercent float64
	DailyAverage  float64
	DaysInMonth   int
	DaysElapsed   int
	DaysRemaining int
}

// MonthlySnapshot totals the month containing now and the month before it.
// The change is 0 when the previous month has no spend.
func MonthlySnapshot(expenses []model.Expense, now time.Time) MonthSnapshot {
	first := firstOfMonth(now)
	s := MonthSnapshot{
		Month:         model.MonthKeyOf(first),
		PreviousMonth: model.MonthKeyOf(first.AddDate(0, -1, 0)),
		DaysInMonth:   daysIn(now),
		DaysElapsed:   now.Day(),
	}
	s.Current = MonthTotal(expenses, s.Month)
	s.Previous = MonthTotal(expenses, s.PreviousMonth)
	if s.Previous > 0 {
		s.ChangePercent = (s.Current - s.Previous) / s.Previous * 100
	}
	s.DaysRemaining = s.DaysInMonth - s.DaysElapsed
	if s.DaysElapsed > 0 {
		s.DailyAverage = s.Current / float64(s.DaysElapsed)
	}
	return s
}

// BudgetUsage returns the share of the monthly budget spent, or 0 when the
// budget is 0.
func BudgetUsage(monthTotal, monthlyBudget float64) float64 {
	return Percent(monthTotal, monthlyBudget)
}

// CategoryShare is one category's slice of a total.
type CategoryShare struct {
	Category model.Category
	Amount   float64
	Percent  float64
}

// CategoryBreakdown sums expenses per category, largest first. Equal totals
// keep category display order. A topN of 0 or less keeps every category.
func CategoryBreakdown(expenses []model.Expense, topN int) []CategoryShare {
	totals := make(map[model.Category]float64)
	var sum float64
	for _, e := range expenses {
		totals[e.Category] += e.Amount
		sum += e.Amount
	}

	out := make([]CategoryShare, 0, len(totals))
	for cat, amount := range totals {
		out = append(out, CategoryShare{
			Category: cat,
			Amount:   amount,
			Percent:  Percent(amount, sum),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		if ri, rj := out[i].Category.Rank(), out[j].Category.Rank(); ri != rj {
			return ri < rj
		}
		return out[i].Category < out[j].Category
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
