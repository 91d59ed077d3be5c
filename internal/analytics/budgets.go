package analytics

import (
	"time"

	"github.com/Veraticus/spendwise/internal/model"
)

// BudgetRow compares one category budget with this month's spend.
type BudgetRow struct {
	Category  model.Category
	Limit     float64
	Spent     float64
	Percent   float64
	Remaining float64
}

// Overspent reports whether spend exceeded the limit.
func (r BudgetRow) Overspent() bool {
	return r.Remaining < 0
}

// BudgetVsActual returns one row per configured budget, in category order.
// Percent is uncapped; Remaining is negative when overspent.
func BudgetVsActual(expenses []model.Expense, budgets model.Budgets, now time.Time) []BudgetRow {
	month := model.MonthKeyOf(now)
	spent := make(map[model.Category]float64)
	for _, e := range expenses {
		if e.Date.HasMonthPrefix(month) {
			spent[e.Category] += e.Amount
		}
	}

	cats := budgets.Categories()
	rows := make([]BudgetRow, 0, len(cats))
	for _, cat := range cats {
		limit := budgets[cat]
		rows = append(rows, BudgetRow{
			Category:  cat,
			Limit:     limit,
			Spent:     spent[cat],
			Percent:   Percent(spent[cat], limit),
			Remaining: limit - spent[cat],
		})
	}
	return rows
}

// GoalStatus pairs a goal with its progress.
type GoalStatus struct {
	Goal      model.Goal
	Percent   float64
	Remaining float64
}

// GoalProgress reports how far each goal has come.
func GoalProgress(goals []model.Goal) []GoalStatus {
	out := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalStatus{
			Goal:      g,
			Percent:   g.Progress(),
			Remaining: g.TargetAmount - g.CurrentAmount,
		})
	}
	return out
}

// RecentCount is the number of expenses shown on the dashboard.
const RecentCount = 5

// DashboardView bundles the headline numbers.
type DashboardView struct {
	Recent          []model.Expense
	Month           MonthSnapshot
	Total           float64
	MonthlyBudget   float64
	RemainingBudget float64
	BudgetUsed      float64
}

// Dashboard computes the headline numbers for the ledger at now.
func Dashboard(expenses []model.Expense, settings model.Settings, now time.Time) DashboardView {
	month := MonthlySnapshot(expenses, now)
	recent := expenses
	if len(recent) > RecentCount {
		recent = recent[:RecentCount]
	}

	return DashboardView{
		Total:           Total(expenses),
		Month:           month,
		MonthlyBudget:   settings.MonthlyBudget,
		RemainingBudget: settings.MonthlyBudget - month.Current,
		BudgetUsed:      BudgetUsage(month.Current, settings.MonthlyBudget),
		Recent:          append([]model.Expense(nil), recent...),
	}
}
