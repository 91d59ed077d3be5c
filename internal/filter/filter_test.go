package filter

import (
	"math"
	"testing"

	"github.com/Veraticus/spendwise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{name: "empty", input: "", wantMin: 0, wantMax: math.Inf(1)},
		{name: "closed", input: "500-1000", wantMin: 500, wantMax: 1000},
		{name: "open ended", input: "2000+", wantMin: 2000, wantMax: math.Inf(1)},
		{name: "lower band", input: "0-500", wantMin: 0, wantMax: 500},
		{name: "garbage min", input: "abc-100", wantMin: 0, wantMax: 100},
		{name: "garbage max", input: "100-abc", wantMin: 100, wantMax: math.Inf(1)},
		{name: "zero max is unbounded", input: "10-0", wantMin: 10, wantMax: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParseAmountRange(tt.input)
			assert.Equal(t, tt.wantMin, r.Min)
			assert.Equal(t, tt.wantMax, r.Max)
		})
	}
}

func TestAmountRange_Scenarios(t *testing.T) {
	closed := ParseAmountRange("500-1000")
	assert.True(t, closed.Contains(750))
	assert.False(t, closed.Contains(1200))
	assert.True(t, closed.Contains(500))
	assert.True(t, closed.Contains(1000))
	assert.True(t, closed.Bounded())

	open := ParseAmountRange("2000+")
	assert.True(t, open.Contains(5000))
	assert.False(t, open.Contains(1000))
	assert.False(t, open.Bounded())
}

func sample() []model.Expense {
	return []model.Expense{
		{ID: 4, Amount: 750, Description: "Groceries", Category: model.CategoryFood, Date: "2024-06-20"},
		{ID: 3, Amount: 1200, Description: "Train ticket", Category: model.CategoryTravel, Date: "2024-06-10"},
		{ID: 2, Amount: 5000, Description: "Rent share", Category: model.CategoryBills, Date: "2024-05-31"},
		{ID: 1, Amount: 90, Description: "Chai", Category: model.CategoryFood, Date: "2024-05-01"},
	}
}

func ids(expenses []model.Expense) []int64 {
	out := make([]int64, len(expenses))
	for i, e := range expenses {
		out[i] = e.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want []int64
	}{
		{name: "empty spec keeps order", spec: Spec{}, want: []int64{4, 3, 2, 1}},
		{name: "search description", spec: Spec{Search: "TRAIN"}, want: []int64{3}},
		{name: "search category display name", spec: Spec{Search: "dining"}, want: []int64{4, 1}},
		{name: "category", spec: Spec{Category: model.CategoryBills}, want: []int64{2}},
		{name: "date from inclusive", spec: Spec{DateFrom: "2024-06-10"}, want: []int64{4, 3}},
		{name: "date to inclusive", spec: Spec{DateTo: "2024-05-31"}, want: []int64{2, 1}},
		{name: "date window", spec: Spec{DateFrom: "2024-05-02", DateTo: "2024-06-19"}, want: []int64{3, 2}},
		{name: "amount band", spec: Spec{Amount: "500-1000"}, want: []int64{4}},
		{name: "amount open", spec: Spec{Amount: "2000+"}, want: []int64{2}},
		{name: "predicates are ANDed", spec: Spec{Category: model.CategoryFood, Amount: "0-100"}, want: []int64{1}},
		{name: "no match", spec: Spec{Search: "yacht"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sample(), tt.spec)))
		})
	}
}

func TestSpec_IsEmpty(t *testing.T) {
	assert.True(t, Spec{Search: "  "}.IsEmpty())
	assert.False(t, Spec{Amount: "2000+"}.IsEmpty())
}

func TestStats(t *testing.T) {
	s := Stats(sample())
	require.Equal(t, 4, s.Count)
	assert.InDelta(t, 7040, s.Total, 1e-9)
	assert.InDelta(t, 1760, s.Average, 1e-9)

	empty := Stats(nil)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Average)
}
