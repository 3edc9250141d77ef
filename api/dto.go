/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the collaborator surface. These decouple the ledger's
  internal model from the wire contract consumed by the UI shell.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

NOTE ON DAY MARKS:
  Day marks keep their tri-state wire shape: true (present), false
  (absent), a number (explicit litres), or null/absent (unmarked).
  engine.DayMark handles this in its JSON methods.
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/household-ledger/engine"
	"github.com/warp/household-ledger/ledger"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type WorkerDTO struct {
	Kind           string             `json:"kind"`
	MonthlySalary  decimal.Decimal    `json:"monthly_salary"`
	RatePerLitre   decimal.Decimal    `json:"rate_per_litre"`
	DefaultLitres  decimal.Decimal    `json:"default_litres"`
	Shifts         engine.ShiftConfig `json:"shifts"`
	IncludeSundays bool               `json:"include_sundays"`
	MarkedDays     int                `json:"marked_days"`
	Payments       []PaymentDTO       `json:"payments"`
}

type PaymentDTO struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	RecordedAt int64           `json:"recorded_at"`
}

type DayStatusDTO struct {
	Date    string         `json:"date"`
	Morning engine.DayMark `json:"morning"`
	Evening engine.DayMark `json:"evening"`
}

type BalanceDTO struct {
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	WorkingDays        int             `json:"working_days"`
	MorningCount       int             `json:"morning_count"`
	EveningCount       int             `json:"evening_count"`
	TotalPresentShifts int             `json:"total_present_shifts"`
	MaxShifts          int             `json:"max_shifts"`
	TotalLitres        decimal.Decimal `json:"total_litres"`
	TotalSalary        decimal.Decimal `json:"total_salary"`
	MonthlySalary      decimal.Decimal `json:"monthly_salary"`
	PreviousBalance    decimal.Decimal `json:"previous_balance"`
	CurrentPayments    decimal.Decimal `json:"current_month_payments"`
	NetPayable         decimal.Decimal `json:"net_payable"`
}

type ActiveWorkerDTO struct {
	Kind string `json:"kind"`
}

type HealthDTO struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SetDayRequest marks one shift of one date. A null or omitted value
// unmarks the shift.
type SetDayRequest struct {
	Shift string         `json:"shift"`
	Value engine.DayMark `json:"value"`
}

// UpdateSettingsRequest is a partial settings update; nil fields are
// left unchanged.
type UpdateSettingsRequest struct {
	MonthlySalary  *decimal.Decimal    `json:"monthly_salary"`
	RatePerLitre   *decimal.Decimal    `json:"rate_per_litre"`
	DefaultLitres  *decimal.Decimal    `json:"default_litres"`
	Shifts         *engine.ShiftConfig `json:"shifts"`
	IncludeSundays *bool               `json:"include_sundays"`
}

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

type SetActiveWorkerRequest struct {
	Kind string `json:"kind"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func workerToDTO(kind engine.WorkerKind, w *ledger.WorkerProfile) WorkerDTO {
	payments := make([]PaymentDTO, 0, len(w.Payments))
	for _, p := range w.Payments {
		payments = append(payments, PaymentDTO{
			ID:         p.ID,
			Amount:     p.Amount,
			Date:       p.Date,
			RecordedAt: p.RecordedAt,
		})
	}
	return WorkerDTO{
		Kind:           string(kind),
		MonthlySalary:  w.MonthlySalary,
		RatePerLitre:   w.RatePerLitre,
		DefaultLitres:  w.DefaultLitres,
		Shifts:         w.Shifts,
		IncludeSundays: w.IncludeSundays,
		MarkedDays:     len(w.Attendance),
		Payments:       payments,
	}
}

func balanceToDTO(year int, month int, b ledger.BalanceView) BalanceDTO {
	return BalanceDTO{
		Year:               year,
		Month:              month,
		WorkingDays:        b.Stats.WorkingDays,
		MorningCount:       b.Stats.MorningCount,
		EveningCount:       b.Stats.EveningCount,
		TotalPresentShifts: b.Stats.TotalPresentShifts,
		MaxShifts:          b.Stats.MaxShifts,
		TotalLitres:        b.Stats.TotalLitres,
		TotalSalary:        b.Stats.TotalSalary,
		MonthlySalary:      b.MonthlySalary,
		PreviousBalance:    b.PreviousBalance,
		CurrentPayments:    b.CurrentMonthPayments,
		NetPayable:         b.NetPayable,
	}
}
