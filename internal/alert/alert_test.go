package alert

import (
	"testing"
	"time"

	"github.com/Veraticus/spendwise/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		spend     float64
		budget    float64
		threshold int
		wantFire  bool
		wantPct   float64
	}{
		{name: "at threshold fires", spend: 800, budget: 1000, threshold: 80, wantFire: true, wantPct: 80},
		{name: "just below threshold", spend: 799, budget: 1000, threshold: 80, wantFire: false, wantPct: 79.9},
		{name: "over budget", spend: 1500, budget: 1000, threshold: 80, wantFire: true, wantPct: 150},
		{name: "zero budget never fires", spend: 500, budget: 0, threshold: 80, wantFire: false, wantPct: 0},
		{name: "zero threshold fires immediately", spend: 0, budget: 1000, threshold: 0, wantFire: true, wantPct: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(tt.spend, tt.budget, tt.threshold)
			assert.Equal(t, tt.wantFire, d.Fire)
			assert.InDelta(t, tt.wantPct, d.PercentUsed, 1e-9)
		})
	}
}

func TestCheck_RefiresWithoutState(t *testing.T) {
	first := Check(900, 1000, 80)
	second := Check(900, 1000, 80)
	assert.True(t, first.Fire)
	assert.Equal(t, first, second)
}

func TestDecision_Message(t *testing.T) {
	d := Check(857, 1000, 80)
	assert.Equal(t, "Warning: You've used 85.7% of your monthly budget!", d.Message())
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	settings := model.DefaultSettings()
	settings.MonthlyBudget = 1000

	expenses := []model.Expense{
		{ID: 1, Amount: 500, Category: model.CategoryFood, Date: "2024-06-01"},
		{ID: 2, Amount: 300, Category: model.CategoryBills, Date: "2024-06-14"},
		{ID: 3, Amount: 900, Category: model.CategoryBills, Date: "2024-05-14"},
	}

	d := Evaluate(expenses, settings, now)
	assert.True(t, d.Fire)
	assert.InDelta(t, 80.0, d.PercentUsed, 1e-9)

	d = Evaluate(expenses[1:], settings, now)
	assert.False(t, d.Fire)
}
