// Package dateutil provides calendar arithmetic helpers shared by the
// allocation engine and its formatters. All dates are normalized to UTC
// midnight and all day spans are inclusive of both endpoints.
package dateutil

import "time"

// Date constructs a UTC midnight time for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates t to UTC midnight.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Normalize(t).AddDate(0, 0, n)
}

// DaysInclusive counts the calendar days from start through end, both
// inclusive. Returns 0 when end precedes start.
func DaysInclusive(start, end time.Time) int {
	s, e := Normalize(start), Normalize(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 1)
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	return MonthEnd(t).Day()
}

// NextMonth returns the first day of the month after t's.
func NextMonth(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// MonthKey renders t's month as "2006-01", the canonical map key for
// month-indexed state.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// OverlapDays counts the inclusive calendar days shared by [aStart,aEnd]
// and [bStart,bEnd]. Returns 0 for disjoint ranges.
func OverlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := MaxDate(aStart, bStart)
	end := MinDate(aEnd, bEnd)
	return DaysInclusive(start, end)
}

// MinDate returns the earlier of a and b.
func MinDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// MaxDate returns the later of a and b.
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
