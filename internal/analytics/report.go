package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
)

// Timeframe selects the analytics window.
type Timeframe string

// Supported timeframes.
const (
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeYear    Timeframe = "year"
	TimeframeAll     Timeframe = "all"
)

// Timeframes lists the supported timeframes.
func Timeframes() []Timeframe {
	return []Timeframe{TimeframeMonth, TimeframeQuarter, TimeframeYear, TimeframeAll}
}

// ParseTimeframe validates s.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Timeframes() {
		if tf == known {
			return tf, nil
		}
	}
	return "", fmt.Errorf("%w: unknown timeframe %q", common.ErrInvalidInput, s)
}

// Start returns the first instant of the window ending at now. The quarter
// is the current month plus the two before it.
func (tf Timeframe) Start(now time.Time) time.Time {
	switch tf {
	case TimeframeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case TimeframeQuarter:
		return time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, now.Location())
	case TimeframeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Unix(0, 0).In(now.Location())
	}
}

// Report summarizes spending within a window.
type Report struct {
	Start        time.Time
	End          time.Time
	TopCategory  *CategoryShare
	ByCategory   []CategoryShare
	Timeframe    Timeframe
	TotalSpent   float64
	DailyAverage float64
	Days         int
}

// Analyze reports on the expenses dated between the timeframe start and now.
// TopCategory is nil when nothing was spent in the window.
func Analyze(expenses []model.Expense, tf Timeframe, now time.Time) Report {
	start := tf.Start(now)
	from, to := model.DateOf(start), model.DateOf(now)

	var window []model.Expense
	for _, e := range expenses {
		if e.Date >= from && e.Date <= to {
			window = append(window, e)
		}
	}

	r := Report{
		Timeframe:  tf,
		Start:      start,
		End:        now,
		TotalSpent: Total(window),
		ByCategory: CategoryBreakdown(window, 0),
		Days:       int(math.Ceil(now.Sub(start).Hours() / 24)),
	}
	if r.TotalSpent > 0 && len(r.ByCategory) > 0 {
		top := r.ByCategory[0]
		r.TopCategory = &top
	}
	if r.Days > 0 {
		r.DailyAverage = r.TotalSpent / float64(r.Days)
	}
	return r
}
