package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/spendwise/internal/common"
)

// DateLayout is the fixed-width calendar date representation used for all bucketing.
const DateLayout = "2006-01-02"

// MonthLayout is the year-month prefix of DateLayout.
const MonthLayout = "2006-01"

// Date is a calendar date stored as YYYY-MM-DD. Month and day bucketing
// use lexical prefix matches on this string, so two dates compare correctly
// with plain string comparison.
type Date string

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// MonthKeyOf returns the YYYY-MM key of t in t's own location.
func MonthKeyOf(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseDate validates s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", common.ErrInvalidInput, s)
	}
	return Date(s), nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return string(d)
}

// MonthKey returns the YYYY-MM prefix of the date.
func (d Date) MonthKey() string {
	if len(d) < len(MonthLayout) {
		return string(d)
	}
	return string(d[:len(MonthLayout)])
}

// HasMonthPrefix reports whether the date falls in the given YYYY-MM month.
func (d Date) HasMonthPrefix(monthKey string) bool {
	return strings.HasPrefix(string(d), monthKey)
}

// Time parses the date as midnight UTC. The zero time is returned for
// malformed values.
func (d Date) Time() time.Time {
	s := string(d)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Before reports whether d sorts before other.
func (d Date) Before(other Date) bool {
	return d < other
}

// Format renders the date as "02 Jan 2006", or the raw value when malformed.
func (d Date) Format() string {
	t := d.Time()
	if t.IsZero() {
		return string(d)
	}
	return t.Format("02 Jan 2006")
}
