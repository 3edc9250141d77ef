package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/household-ledger/engine"
	"github.com/warp/household-ledger/ledger"
)

// =============================================================================
// BALANCE COMPOSITION TESTS
// =============================================================================

func TestGetBalance_NoHistory_ZeroPreviousBalance(t *testing.T) {
	s, _ := newReadyStore(t)

	b, err := s.GetBalance(engine.KindCook, 2025, time.February)
	require.NoError(t, err)

	assert.True(t, b.PreviousBalance.IsZero())
	assert.True(t, b.CurrentMonthPayments.IsZero())
	assert.True(t, b.NetPayable.IsZero())
	assert.Equal(t, 24, b.Stats.WorkingDays)
	assert.True(t, b.MonthlySalary.Equal(dec(6000)))
}

func TestGetBalance_CarryForwardAcrossMonths(t *testing.T) {
	// GIVEN: cook at 5400/month (Jan 2025: 27 working days, 54 shifts,
	//        exactly 100/shift), 15 shifts worked in January, 400 paid
	// WHEN: viewing February with 2 shifts worked and 200 paid
	// THEN: previous = 1500 - 400 = 1100
	//       February pay = 2 * (5400/48) = 225
	//       net = 225 + 1100 - 200 = 1125

	s, _ := newReadyStore(t)

	salary := dec(5400)
	require.NoError(t, s.UpdateSettings(engine.KindCook, ledger.SettingsPatch{MonthlySalary: &salary}))

	// January: 10 mornings and 5 evenings across non-Sunday days.
	marked := 0
	for d := 1; d <= 31 && marked < 10; d++ {
		date := time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
		if date.Weekday() == time.Sunday {
			continue
		}
		require.NoError(t, s.SetDayStatus(engine.KindCook, engine.FormatDay(date), engine.ShiftMorning, engine.Present()))
		if marked < 5 {
			require.NoError(t, s.SetDayStatus(engine.KindCook, engine.FormatDay(date), engine.ShiftEvening, engine.Present()))
		}
		marked++
	}
	_, err := s.RecordPayment(engine.KindCook, dec(400), "2025-01-20")
	require.NoError(t, err)

	// February: 2 morning shifts and one payment.
	require.NoError(t, s.SetDayStatus(engine.KindCook, "2025-02-03", engine.ShiftMorning, engine.Present()))
	require.NoError(t, s.SetDayStatus(engine.KindCook, "2025-02-04", engine.ShiftMorning, engine.Present()))
	_, err = s.RecordPayment(engine.KindCook, dec(200), "2025-02-10")
	require.NoError(t, err)

	b, err := s.GetBalance(engine.KindCook, 2025, time.February)
	require.NoError(t, err)

	assert.True(t, b.PreviousBalance.Equal(dec(1100)), "previous = %s", b.PreviousBalance)
	assert.True(t, b.Stats.TotalSalary.Equal(dec(225)), "feb salary = %s", b.Stats.TotalSalary)
	assert.True(t, b.CurrentMonthPayments.Equal(dec(200)))
	assert.True(t, b.NetPayable.Equal(dec(1125)), "net = %s", b.NetPayable)
}

func TestGetBalance_PaymentOnlyMonth_CountsAsAdvance(t *testing.T) {
	// A payment in a month with no attendance still reduces the carried
	// balance: previous can go negative (advance paid).

	s, _ := newReadyStore(t)

	_, err := s.RecordPayment(engine.KindCook, dec(400), "2025-01-15")
	require.NoError(t, err)

	b, err := s.GetBalance(engine.KindCook, 2025, time.February)
	require.NoError(t, err)
	assert.True(t, b.PreviousBalance.Equal(dec(-400)), "previous = %s", b.PreviousBalance)
	assert.True(t, b.NetPayable.Equal(dec(-400)))
}

func TestGetBalance_FutureDatedPayment_NotCountedEarlier(t *testing.T) {
	// A payment dated in April belongs to April's bucket; viewing
	// February it is neither previous nor current.

	s, _ := newReadyStore(t)

	_, err := s.RecordPayment(engine.KindCook, dec(300), "2025-04-01")
	require.NoError(t, err)

	feb, err := s.GetBalance(engine.KindCook, 2025, time.February)
	require.NoError(t, err)
	assert.True(t, feb.PreviousBalance.IsZero())
	assert.True(t, feb.CurrentMonthPayments.IsZero())

	may, err := s.GetBalance(engine.KindCook, 2025, time.May)
	require.NoError(t, err)
	assert.True(t, may.PreviousBalance.Equal(dec(-300)))
}

func TestGetBalance_MilkLitresAcrossMonths(t *testing.T) {
	s, _ := newReadyStore(t)

	// January: 2 default litres and an explicit 0.5.
	require.NoError(t, s.SetDayStatus(engine.KindMilk, "2025-01-06", engine.ShiftMorning, engine.Present()))
	require.NoError(t, s.SetDayStatus(engine.KindMilk, "2025-01-07", engine.ShiftMorning, engine.Present()))
	require.NoError(t, s.SetDayStatus(engine.KindMilk, "2025-01-07", engine.ShiftEvening, engine.Quantity(decimal.NewFromFloat(0.5))))

	// February: one default litre.
	require.NoError(t, s.SetDayStatus(engine.KindMilk, "2025-02-03", engine.ShiftMorning, engine.Present()))

	b, err := s.GetBalance(engine.KindMilk, 2025, time.February)
	require.NoError(t, err)

	// January owed round(2.5 * 60) = 150, nothing paid.
	assert.True(t, b.PreviousBalance.Equal(dec(150)), "previous = %s", b.PreviousBalance)
	assert.True(t, b.Stats.TotalLitres.Equal(dec(1)))
	assert.True(t, b.Stats.TotalSalary.Equal(dec(60)))
	assert.True(t, b.NetPayable.Equal(dec(210)))
}

func TestGetBalance_MatchesReplayIdentity(t *testing.T) {
	// getBalance(M) must equal: sum of prior months' engine stats minus
	// prior payments, plus current stats minus current payments.

	s, _ := newReadyStore(t)

	require.NoError(t, s.SetDayStatus(engine.KindMaid, "2024-11-04", engine.ShiftMorning, engine.Present()))
	require.NoError(t, s.SetDayStatus(engine.KindMaid, "2024-12-02", engine.ShiftEvening, engine.Present()))
	require.NoError(t, s.SetDayStatus(engine.KindMaid, "2025-01-06", engine.ShiftMorning, engine.Present()))
	_, err := s.RecordPayment(engine.KindMaid, dec(50), "2024-12-15")
	require.NoError(t, err)

	w, err := s.Worker(engine.KindMaid)
	require.NoError(t, err)

	expectedPrior := decimal.Zero
	for _, mk := range []string{"2024-11", "2024-12"} {
		y, m, perr := engine.ParseMonthKey(mk)
		require.NoError(t, perr)
		attendance := map[string]engine.DayRecord{}
		for date, rec := range w.Attendance {
			if engine.MonthKeyOfDay(date) == mk {
				attendance[date] = rec
			}
		}
		stats := engine.ComputeMonthStats(attendance, y, m, w.Shifts, engine.KindMaid, w.Settings())
		expectedPrior = expectedPrior.Add(stats.TotalSalary)
	}
	expectedPrior = expectedPrior.Sub(dec(50))

	b, err := s.GetBalance(engine.KindMaid, 2025, time.January)
	require.NoError(t, err)
	assert.True(t, b.PreviousBalance.Equal(expectedPrior), "previous = %s, expected %s", b.PreviousBalance, expectedPrior)
}
