package types

import "time"

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay returns day limited to the days that exist in the month.
// A day of 31 in April is 30, in a February of a leap year 29.
func ClampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}

	if last := DaysIn(year, month); day > last {
		return last
	}

	return day
}

// Day returns the calendar day of t as midnight UTC.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateIn returns the date of the target day in the month, clamped to the
// length of the month.
func DateIn(m Month, targetDay int) time.Time {
	year, month := m.Calendar()
	return time.Date(year, month, ClampDay(year, month, targetDay), 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped moves date by n calendar months and places it on
// targetDay of the resulting month, clamped to that month's length.
//
// The clamping is done against each resulting month, so a rule anchored on
// the 31st lands on Feb 28 and then on Mar 31, never on Mar 28 or Mar 3.
func AddMonthsClamped(date time.Time, n, targetDay int) time.Time {
	return DateIn(MonthOf(date).AddDate(0, n), targetDay)
}

// SameDayOrBefore reports if the calendar day of a is not after that of b.
func SameDayOrBefore(a, b time.Time) bool {
	return !Day(a).After(Day(b))
}
