// Package filter derives filtered views of the expense ledger.
package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/spendwise/internal/model"
)

// AmountRange bounds an expense amount, inclusive on both ends.
// Max is +Inf when the range is open-ended.
type AmountRange struct {
	Min float64
	Max float64
}

// Any matches every amount.
var Any = AmountRange{Min: 0, Max: math.Inf(1)}

// ParseAmountRange reads "min-max", "min+" or "". Unparseable or missing
// bounds fall back to 0 for the minimum and no limit for the maximum; a
// maximum of 0 is also treated as no limit.
func ParseAmountRange(s string) AmountRange {
	s = strings.TrimSpace(s)
	if s == "" {
		return Any
	}

	parts := strings.Split(s, "-")
	r := Any
	if v, ok := parseBound(parts[0]); ok {
		r.Min = v
	}
	if len(parts) > 1 {
		if v, ok := parseBound(parts[1]); ok && v != 0 {
			r.Max = v
		}
	}
	return r
}

func parseBound(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "+", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Contains reports whether amount lies within the range.
func (r AmountRange) Contains(amount float64) bool {
	return amount >= r.Min && amount <= r.Max
}

// Bounded reports whether the range has an upper limit.
func (r AmountRange) Bounded() bool {
	return !math.IsInf(r.Max, 1)
}

// Spec selects expenses. Zero-valued fields match everything.
type Spec struct {
	Search   string
	Category model.Category
	DateFrom model.Date
	DateTo   model.Date
	Amount   string
}

// IsEmpty reports whether the spec selects every expense.
func (s Spec) IsEmpty() bool {
	return strings.TrimSpace(s.Search) == "" && s.Category == "" &&
		s.DateFrom == "" && s.DateTo == "" && strings.TrimSpace(s.Amount) == ""
}

// Matcher returns a predicate equivalent to the spec.
func (s Spec) Matcher() func(model.Expense) bool {
	search := strings.ToLower(strings.TrimSpace(s.Search))
	amount := ParseAmountRange(s.Amount)

	return func(e model.Expense) bool {
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Description), search) &&
			!strings.Contains(strings.ToLower(e.Category.DisplayName()), search) {
			return false
		}
		if s.Category != "" && e.Category != s.Category {
			return false
		}
		if s.DateFrom != "" && e.Date < s.DateFrom {
			return false
		}
		if s.DateTo != "" && e.Date > s.DateTo {
			return false
		}
		return amount.Contains(e.Amount)
	}
}

// Apply returns the expenses matching spec, preserving their order.
func Apply(expenses []model.Expense, spec Spec) []model.Expense {
	match := spec.Matcher()
	out := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Summary describes a filtered view.
type Summary struct {
	Count   int
	Total   float64
	Average float64
}

// Stats summarizes expenses. The average of an empty set is 0.
func Stats(expenses []model.Expense) Summary {
	s := Summary{Count: len(expenses)}
	for _, e := range expenses {
		s.Total += e.Amount
	}
	if s.Count > 0 {
		s.Average = s.Total / float64(s.Count)
	}
	return s
}
