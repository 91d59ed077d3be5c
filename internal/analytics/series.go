package analytics

import (
	"time"

	"github.com/Veraticus/spendwise/internal/model"
)

// Point is one labelled bucket of a series.
type Point struct {
	Key   string
	Label string
	Value float64
}

// MonthsInSeries is the length of the monthly series.
const MonthsInSeries = 12

// DailySeries returns days+1 daily totals ending today, oldest first.
// Days with no expenses are 0.
func DailySeries(expenses []model.Expense, now time.Time, days int) []Point {
	if days < 0 {
		days = 0
	}

	byDay := make(map[model.Date]float64)
	for _, e := range expenses {
		byDay[e.Date] += e.Amount
	}

	out := make([]Point, 0, days+1)
	for i := days; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		date := model.DateOf(d)
		out = append(out, Point{
			Key:   string(date),
			Label: d.Format("Jan 2"),
			Value: byDay[date],
		})
	}
	return out
}

// WeeklyAverages returns the mean expense amount per weekday, Monday first.
// Weekdays with no expenses are 0. Expenses with malformed dates are skipped.
func WeeklyAverages(expenses []model.Expense) [7]float64 {
	var totals [7]float64
	var counts [7]int
	for _, e := range expenses {
		t := e.Date.Time()
		if t.IsZero() {
			continue
		}
		idx := (int(t.Weekday()) + 6) % 7
		totals[idx] += e.Amount
		counts[idx]++
	}

	var out [7]float64
	for i := range totals {
		if counts[i] > 0 {
			out[i] = totals[i] / float64(counts[i])
		}
	}
	return out
}

// WeekdayLabels names the WeeklyAverages buckets.
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthlySeries returns the totals of the last twelve calendar months
// including the current one, oldest first.
func MonthlySeries(expenses []model.Expense, now time.Time) []Point {
	first := firstOfMonth(now)

	out := make([]Point, 0, MonthsInSeries)
	index := make(map[string]int, MonthsInSeries)
	for i := MonthsInSeries - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		key := model.MonthKeyOf(m)
		index[key] = len(out)
		out = append(out, Point{
			Key:   key,
			Label: m.Format("Jan 2006"),
		})
	}

	for _, e := range expenses {
		if i, ok := index[e.Date.MonthKey()]; ok {
			out[i].Value += e.Amount
		}
	}
	return out
}
