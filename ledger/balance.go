/*
balance.go - Month balance composition with carry-forward

PURPOSE:
  GetBalance composes the view the UI renders: the target month's engine
  stats plus the unpaid balance carried in from every month before it.

REPLAY MODEL:
  Previous balance = (sum of every prior month's payable, computed by the
  engine from that month's attendance) - (sum of every payment dated before
  the target month). The whole ledger is replayed on each call; at
  household scale (tens of months, three workers) this is cheap and keeps
  no cache to invalidate. Replay uses the worker's current settings for
  past months, same as the stored history always has.
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/household-ledger/engine"
)

// GetBalance returns the composed balance view for one worker and month.
func (s *Store) GetBalance(kind engine.WorkerKind, year int, month time.Month) (BalanceView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.workerLocked(kind)
	if err != nil {
		return BalanceView{}, err
	}

	targetKey := engine.MonthKey(year, month)
	settings := w.Settings()

	// Bucket attendance by YYYY-MM. Keys sort chronologically as strings.
	byMonth := make(map[string]map[string]engine.DayRecord)
	for date, rec := range w.Attendance {
		mk := engine.MonthKeyOfDay(date)
		if byMonth[mk] == nil {
			byMonth[mk] = make(map[string]engine.DayRecord)
		}
		byMonth[mk][date] = rec
	}

	stats := engine.ComputeMonthStats(byMonth[targetKey], year, month, w.Shifts, kind, settings)

	// Replay every month with activity strictly before the target.
	pastSalary := decimal.Zero
	for mk, attendance := range byMonth {
		if mk >= targetKey {
			continue
		}
		y, m, err := engine.ParseMonthKey(mk)
		if err != nil {
			// SetDayStatus validates dates, so buckets always parse.
			continue
		}
		past := engine.ComputeMonthStats(attendance, y, m, w.Shifts, kind, settings)
		pastSalary = pastSalary.Add(past.TotalSalary)
	}

	pastPayments := decimal.Zero
	currentPayments := decimal.Zero
	for _, p := range w.Payments {
		switch mk := engine.MonthKeyOfDay(p.Date); {
		case mk < targetKey:
			pastPayments = pastPayments.Add(p.Amount)
		case mk == targetKey:
			currentPayments = currentPayments.Add(p.Amount)
		}
	}

	previous := pastSalary.Sub(pastPayments)
	return BalanceView{
		Stats:                stats,
		MonthlySalary:        w.MonthlySalary,
		PreviousBalance:      previous,
		CurrentMonthPayments: currentPayments,
		NetPayable:           stats.TotalSalary.Add(previous).Sub(currentPayments),
	}, nil
}
