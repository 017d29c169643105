// utils/dates.go
package utils

import (
	"math"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysSince returns the whole-day distance from t to now, rounding any
// partial day up. A service done 10.2 days ago counts as 11 days.
func DaysSince(now, t time.Time) int {
	diff := now.Sub(t)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// InPeriod reports whether t falls in the given year and, when month is
// non-zero, month. Calendar fields are compared directly so the check does
// not depend on the timestamp's zone offset.
func InPeriod(t time.Time, year int, month time.Month) bool {
	if t.Year() != year {
		return false
	}
	return month == 0 || t.Month() == month
}
