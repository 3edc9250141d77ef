/*
Package ledger owns the canonical per-worker state: attendance marks,
payment settings, and the append-only payment log. It exposes atomic
mutations and the balance query, persisting the whole worker set as one
versioned JSON snapshot after every change.

The engine package does the arithmetic; this package does the bookkeeping.

KEY TYPES:
  WorkerProfile:  one worker's full state (three fixed profiles always exist)
  Payment:        append-only payment log entry
  SettingsPatch:  partial settings update with pointer fields
  BalanceView:    composed month view with carry-forward, never persisted
  SnapshotStore:  pluggable blob persistence (sqlite in production,
                  memory in tests)
*/
package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/household-ledger/engine"
)

// =============================================================================
// PAYMENT - Append-only log entry
// =============================================================================

// Payment records one payout to a worker. Entries are never edited or
// deleted; corrections happen outside the system.
type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`

	// RecordedAt is the wall-clock capture time in unix milliseconds,
	// matching the stored blob format.
	RecordedAt int64 `json:"timestamp"`
}

func newPaymentID() string { return uuid.NewString() }

// =============================================================================
// WORKER PROFILE
// =============================================================================

// WorkerProfile is one worker's complete persisted state. JSON field names
// mirror the storage blob layout, which predates this codebase.
type WorkerProfile struct {
	Attendance     map[string]engine.DayRecord `json:"attendance"`
	MonthlySalary  decimal.Decimal             `json:"salary"`
	RatePerLitre   decimal.Decimal             `json:"ratePerLitre"`
	DefaultLitres  decimal.Decimal             `json:"defaultLitre"`
	Payments       []Payment                   `json:"payments"`
	Shifts         engine.ShiftConfig          `json:"shifts"`
	IncludeSundays bool                        `json:"includeSundays"`
}

// Settings projects the profile onto the engine's input knobs.
func (p *WorkerProfile) Settings() engine.Settings {
	return engine.Settings{
		MonthlySalary:  p.MonthlySalary,
		RatePerLitre:   p.RatePerLitre,
		DefaultLitres:  p.DefaultLitres,
		IncludeSundays: p.IncludeSundays,
	}
}

// clone deep-copies the profile so read snapshots never alias live state.
func (p *WorkerProfile) clone() *WorkerProfile {
	cp := *p
	cp.Attendance = make(map[string]engine.DayRecord, len(p.Attendance))
	for k, v := range p.Attendance {
		cp.Attendance[k] = v
	}
	cp.Payments = append([]Payment(nil), p.Payments...)
	return &cp
}

// DefaultProfiles builds the three fixed profiles of a fresh install.
func DefaultProfiles() map[engine.WorkerKind]*WorkerProfile {
	bothShifts := engine.ShiftConfig{Morning: true, Evening: true}
	return map[engine.WorkerKind]*WorkerProfile{
		engine.KindCook: {
			Attendance:    map[string]engine.DayRecord{},
			MonthlySalary: decimal.NewFromInt(6000),
			DefaultLitres: decimal.NewFromInt(1),
			Payments:      []Payment{},
			Shifts:        bothShifts,
		},
		engine.KindMaid: {
			Attendance:    map[string]engine.DayRecord{},
			MonthlySalary: decimal.NewFromInt(3000),
			DefaultLitres: decimal.NewFromInt(1),
			Payments:      []Payment{},
			Shifts:        bothShifts,
		},
		engine.KindMilk: {
			Attendance:     map[string]engine.DayRecord{},
			RatePerLitre:   decimal.NewFromInt(60),
			DefaultLitres:  decimal.NewFromInt(1),
			Payments:       []Payment{},
			Shifts:         bothShifts,
			IncludeSundays: true,
		},
	}
}

// =============================================================================
// SETTINGS PATCH - Partial update, nil means "leave unchanged"
// =============================================================================

type SettingsPatch struct {
	MonthlySalary  *decimal.Decimal
	RatePerLitre   *decimal.Decimal
	DefaultLitres  *decimal.Decimal
	Shifts         *engine.ShiftConfig
	IncludeSundays *bool
}

// =============================================================================
// BALANCE VIEW - Composed month view, never persisted
// =============================================================================

type BalanceView struct {
	Stats engine.MonthStats

	// MonthlySalary echoes the configured salary for display next to stats.
	MonthlySalary decimal.Decimal

	// PreviousBalance is lifetime payable minus lifetime paid over all
	// months strictly before the target month.
	PreviousBalance decimal.Decimal

	// CurrentMonthPayments sums payments dated within the target month.
	CurrentMonthPayments decimal.Decimal

	// NetPayable = Stats.TotalSalary + PreviousBalance - CurrentMonthPayments.
	NetPayable decimal.Decimal
}

// =============================================================================
// SNAPSHOT STORE - Pluggable blob persistence
// =============================================================================

// SnapshotStore persists whole worker-set blobs under version keys.
// Each Save overwrites the full snapshot; there is no partial write.
type SnapshotStore interface {
	// Save stores the payload under key, replacing any previous value.
	Save(ctx context.Context, key string, payload []byte) error

	// Load returns the payload stored under key, or ErrSnapshotNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
}
