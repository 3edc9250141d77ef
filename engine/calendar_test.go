package engine_test

import (
	"testing"
	"time"

	"github.com/warp/household-ledger/engine"
)

// =============================================================================
// CALENDAR PROPERTY TESTS
// =============================================================================

func TestWorkingDays_PlusSundays_EqualsDaysInMonth(t *testing.T) {
	// GIVEN: every month of 2024-2026 (covers a leap year)
	// THEN: workingDays + sundayCount == daysInMonth holds everywhere

	for year := 2024; year <= 2026; year++ {
		for m := time.January; m <= time.December; m++ {
			days := engine.DaysInMonth(year, m)
			sundays := engine.SundayCount(year, m)
			working := engine.WorkingDays(year, m)
			if working+sundays != days {
				t.Errorf("%d-%02d: working %d + sundays %d != days %d", year, m, working, sundays, days)
			}
		}
	}
}

func TestDaysInMonth_LeapYear(t *testing.T) {
	if got := engine.DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("Feb 2024: expected 29 days, got %d", got)
	}
	if got := engine.DaysInMonth(2025, time.February); got != 28 {
		t.Errorf("Feb 2025: expected 28 days, got %d", got)
	}
	if got := engine.DaysInMonth(2025, time.December); got != 31 {
		t.Errorf("Dec 2025: expected 31 days, got %d", got)
	}
}

func TestSundayCount_February2025(t *testing.T) {
	// Feb 2025 Sundays: 2, 9, 16, 23
	if got := engine.SundayCount(2025, time.February); got != 4 {
		t.Errorf("expected 4 Sundays, got %d", got)
	}
	if got := engine.WorkingDays(2025, time.February); got != 24 {
		t.Errorf("expected 24 working days, got %d", got)
	}
}

func TestMonthKeys(t *testing.T) {
	if got := engine.MonthKey(2025, time.February); got != "2025-02" {
		t.Errorf("expected 2025-02, got %s", got)
	}
	if got := engine.MonthKeyOfDay("2025-02-14"); got != "2025-02" {
		t.Errorf("expected 2025-02, got %s", got)
	}

	y, m, err := engine.ParseMonthKey("2025-02")
	if err != nil || y != 2025 || m != time.February {
		t.Errorf("expected (2025, February), got (%d, %v, %v)", y, m, err)
	}
}

func TestParseDay(t *testing.T) {
	day, err := engine.ParseDay("2025-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !engine.IsSunday(day) {
		t.Error("2025-03-02 is a Sunday")
	}

	if _, err := engine.ParseDay("02-03-2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := engine.ParseDay("2025-13-01"); err == nil {
		t.Error("expected error for month 13")
	}
}
