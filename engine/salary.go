/*
salary.go - Month statistics and payable derivation

PURPOSE:
  ComputeMonthStats is the single entry point of the engine. It derives shift
  counts (cook/maid) or litre totals (milk) from one month of attendance marks
  and prices them.

PAYMENT MODELS:
  Fixed monthly (cook/maid):
    maxShifts   = workingDays * enabledShiftsPerDay
    payPerShift = monthlySalary / maxShifts   (not rounded)
    payable     = round(presentShifts * payPerShift)

  Per-litre (milk):
    payable = round(totalLitres * ratePerLitre)

  Rounding is half away from zero, applied once to the final amount.

CALLER CONTRACT:
  The attendance map must contain only dates of the target (year, month);
  the ledger pre-filters. Months outside 1..12 are not guarded.
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComputeMonthStats derives a month's attendance statistics and payable
// amount. Pure and deterministic; the result is fully determined by inputs.
func ComputeMonthStats(attendance map[string]DayRecord, year int, month time.Month, shifts ShiftConfig, kind WorkerKind, settings Settings) MonthStats {
	stats := MonthStats{
		WorkingDays: WorkingDays(year, month),
		TotalLitres: decimal.Zero,
		TotalSalary: decimal.Zero,
	}

	for _, rec := range attendance {
		if kind.PaidPerLitre() {
			if shifts.Morning {
				stats.TotalLitres = stats.TotalLitres.Add(rec.Morning.Litres(settings.DefaultLitres))
			}
			if shifts.Evening {
				stats.TotalLitres = stats.TotalLitres.Add(rec.Evening.Litres(settings.DefaultLitres))
			}
			continue
		}
		if shifts.Morning && rec.Morning.IsPresent() {
			stats.MorningCount++
		}
		if shifts.Evening && rec.Evening.IsPresent() {
			stats.EveningCount++
		}
	}
	stats.TotalPresentShifts = stats.MorningCount + stats.EveningCount

	if kind.PaidPerLitre() {
		stats.TotalSalary = stats.TotalLitres.Mul(settings.RatePerLitre).Round(0)
		return stats
	}

	// Guard against a misconfigured worker with both shifts off: proration
	// still needs a positive per-day slot count.
	shiftsPerDay := shifts.EnabledCount()
	if shiftsPerDay < 1 {
		shiftsPerDay = 1
	}
	stats.MaxShifts = stats.WorkingDays * shiftsPerDay

	if stats.MaxShifts > 0 {
		payPerShift := settings.MonthlySalary.Div(decimal.NewFromInt(int64(stats.MaxShifts)))
		stats.TotalSalary = payPerShift.Mul(decimal.NewFromInt(int64(stats.TotalPresentShifts))).Round(0)
	}
	return stats
}
