package utils

import (
	"time"

	"github.com/amorozov/habitlife/internal/constants"
)

// StartOfDay truncates t to midnight UTC. All day-granularity values in
// the engine are normalized through this.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday of the week starting at weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, constants.DaysPerWeek-1)
}

// AddDays returns t shifted by n days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// NextWeek returns the week start one week after weekStart.
func NextWeek(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, constants.DaysPerWeek)
}

// SameWeek reports whether a and b fall in the same Monday-based week.
func SameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b))
}

// FormatDate renders t as a YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}
