package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// CALENDAR ARITHMETIC - Month lengths, Sundays, date keys
// =============================================================================

// DayFormat is the attendance map key layout. String sort equals date sort.
const DayFormat = "2006-01-02"

// MonthFormat is the YYYY-MM prefix used to bucket dates by month.
const MonthFormat = "2006-01"

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SundayCount counts the Sundays in the given month using the proleptic
// Gregorian weekday, independent of locale.
func SundayCount(year int, month time.Month) int {
	n := 0
	for day := 1; day <= DaysInMonth(year, month); day++ {
		if time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday() == time.Sunday {
			n++
		}
	}
	return n
}

// WorkingDays is the proration denominator: every day of the month except
// Sundays. Deliberately unaffected by Settings.IncludeSundays.
func WorkingDays(year int, month time.Month) int {
	return DaysInMonth(year, month) - SundayCount(year, month)
}

// ParseDay parses and validates an ISO date key.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func FormatDay(t time.Time) string { return t.Format(DayFormat) }

// MonthKey returns the YYYY-MM bucket for a year/month pair.
func MonthKey(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(MonthFormat)
}

// MonthKeyOfDay returns the YYYY-MM prefix of an ISO date key.
func MonthKeyOfDay(day string) string {
	if len(day) < len("2006-01") {
		return day
	}
	return day[:len("2006-01")]
}

// ParseMonthKey splits a YYYY-MM bucket back into year and month.
func ParseMonthKey(key string) (int, time.Month, error) {
	t, err := time.ParseInLocation(MonthFormat, key, time.UTC)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t.Year(), t.Month(), nil
}

func IsSunday(t time.Time) bool { return t.Weekday() == time.Sunday }
