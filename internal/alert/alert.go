// Package alert decides when monthly spend has crossed the budget threshold.
package alert

import (
	"fmt"
	"time"

	"github.com/Veraticus/spendwise/internal/analytics"
	"github.com/Veraticus/spendwise/internal/model"
)

// Decision is the outcome of a budget check.
type Decision struct {
	PercentUsed float64
	Fire        bool
}

// Check fires when spend reaches threshold percent of budget. A zero budget
// never fires. The check keeps no state, so repeated calls fire repeatedly.
func Check(monthlySpend, monthlyBudget float64, thresholdPercent int) Decision {
	if monthlyBudget <= 0 {
		return Decision{}
	}
	used := analytics.BudgetUsage(monthlySpend, monthlyBudget)
	return Decision{
		PercentUsed: used,
		Fire:        used >= float64(thresholdPercent),
	}
}

// Message renders the warning shown when the decision fires.
func (d Decision) Message() string {
	return fmt.Sprintf("Warning: You've used %.1f%% of your monthly budget!", d.PercentUsed)
}

// Evaluate checks the current month's spend against settings.
func Evaluate(expenses []model.Expense, settings model.Settings, now time.Time) Decision {
	spend := analytics.MonthTotal(expenses, model.MonthKeyOf(now))
	return Check(spend, settings.MonthlyBudget, settings.AlertThreshold)
}
