package model

import "sort"

// Budgets maps each category to its monthly spending limit.
type Budgets map[Category]float64

// DefaultBudgets returns the seeded per-category limits.
func DefaultBudgets() Budgets {
	return Budgets{
		CategoryFood:          15000,
		CategoryTransport:     5000,
		CategoryEntertainment: 8000,
		CategoryBills:         12000,
		CategoryShopping:      7000,
		CategoryHealthcare:    3000,
		CategoryEducation:     2000,
		CategoryTravel:        5000,
		CategoryOther:         3000,
	}
}

// Clone returns an independent copy.
func (b Budgets) Clone() Budgets {
	out := make(Budgets, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Categories returns the budgeted categories: known ones in display order,
// then any unknown keys in lexical order.
func (b Budgets) Categories() []Category {
	out := make([]Category, 0, len(b))
	for _, c := range categories {
		if _, ok := b[c]; ok {
			out = append(out, c)
		}
	}
	var extra []Category
	for c := range b {
		if !c.IsKnown() {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// Goal is a savings or spending target.
type Goal struct {
	Title         string  `json:"title"`
	TargetDate    Date    `json:"targetDate"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
}

// Progress returns the percent of the target reached, or 0 for a zero target.
func (g Goal) Progress() float64 {
	if g.TargetAmount == 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}
