/*
Package engine provides the pure salary computation core.

PURPOSE:
  This package turns a sparse month of attendance marks into derived numbers:
  shift counts, litre totals, and a rounded payable amount. It holds no state,
  performs no I/O, and trusts its caller to pre-filter attendance to the target
  month. The ledger package owns persistence and replay; engine owns arithmetic.

KEY CONCEPTS IN THIS FILE (types.go):
  - WorkerKind: which payment model applies (fixed monthly vs per-litre)
  - Shift/ShiftConfig: the two half-day slots and which are enabled
  - DayMark: tagged tri-state-plus-quantity value for one shift of one day
  - DayRecord: the per-date pair of marks, garbage-collected when empty
  - Settings: the worker knobs the computation depends on
  - MonthStats: the derived output, never persisted

DESIGN PRINCIPLES:
  1. Purity: ComputeMonthStats is deterministic with no side effects
  2. Precision: decimal.Decimal for money and litres, no float drift
  3. Explicit variants: DayMark replaces true/false/undefined/number overloading

SEE ALSO:
  - salary.go: The computation itself
  - calendar.go: Month/weekday arithmetic
*/
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// WORKER KIND - Determines the payment model
// =============================================================================

type WorkerKind string

const (
	KindCook WorkerKind = "cook"
	KindMaid WorkerKind = "maid"
	KindMilk WorkerKind = "milk"
)

// Kinds lists the fixed worker profiles, in display order.
func Kinds() []WorkerKind { return []WorkerKind{KindCook, KindMaid, KindMilk} }

func (k WorkerKind) Valid() bool {
	return k == KindCook || k == KindMaid || k == KindMilk
}

// PaidPerLitre reports whether the worker is paid by delivered quantity
// instead of a prorated monthly salary.
func (k WorkerKind) PaidPerLitre() bool { return k == KindMilk }

// =============================================================================
// SHIFTS
// =============================================================================

type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

func (s Shift) Valid() bool { return s == ShiftMorning || s == ShiftEvening }

// ShiftConfig records which half-day slots are enabled for a worker.
// At least one must remain enabled; the ledger enforces that invariant.
type ShiftConfig struct {
	Morning bool `json:"morning"`
	Evening bool `json:"evening"`
}

func (c ShiftConfig) Enabled(s Shift) bool {
	if s == ShiftMorning {
		return c.Morning
	}
	return c.Evening
}

func (c ShiftConfig) EnabledCount() int {
	n := 0
	if c.Morning {
		n++
	}
	if c.Evening {
		n++
	}
	return n
}

func (c ShiftConfig) NoneEnabled() bool { return !c.Morning && !c.Evening }

// =============================================================================
// DAY MARK - Tagged variant for one shift of one day
// =============================================================================

// DayMark is one of: Unmarked (no entry), Absent (explicit no-show),
// Present (show, default quantity for milk), or Quantity (explicit litres).
// The zero value is Unmarked.
type markState int

const (
	markUnmarked markState = iota
	markAbsent
	markPresent
	markQuantity
)

type DayMark struct {
	state markState
	qty   decimal.Decimal
}

func Unmarked() DayMark { return DayMark{} }
func Absent() DayMark   { return DayMark{state: markAbsent} }
func Present() DayMark  { return DayMark{state: markPresent} }

// Quantity marks a shift with an explicit litre amount. Negative input is
// clamped to zero; the ledger validates before it gets here.
func Quantity(litres decimal.Decimal) DayMark {
	if litres.IsNegative() {
		litres = decimal.Zero
	}
	return DayMark{state: markQuantity, qty: litres}
}

func (m DayMark) IsUnmarked() bool { return m.state == markUnmarked }
func (m DayMark) IsAbsent() bool   { return m.state == markAbsent }
func (m DayMark) IsPresent() bool  { return m.state == markPresent }
func (m DayMark) IsQuantity() bool { return m.state == markQuantity }

// Litres returns the litre contribution of this mark: the explicit quantity,
// the worker default for a plain Present, zero otherwise.
func (m DayMark) Litres(defaultQty decimal.Decimal) decimal.Decimal {
	switch m.state {
	case markQuantity:
		return m.qty
	case markPresent:
		return defaultQty
	default:
		return decimal.Zero
	}
}

// Equal compares marks including explicit quantities.
func (m DayMark) Equal(other DayMark) bool {
	if m.state != other.state {
		return false
	}
	if m.state == markQuantity {
		return m.qty.Equal(other.qty)
	}
	return true
}

// MarshalJSON keeps the persisted shape of the original storage blob:
// false, true, or a bare number. Unmarked marks are omitted one level up
// by DayRecord and serialize as null if forced through here.
func (m DayMark) MarshalJSON() ([]byte, error) {
	switch m.state {
	case markAbsent:
		return []byte("false"), nil
	case markPresent:
		return []byte("true"), nil
	case markQuantity:
		return json.Marshal(m.qty)
	default:
		return []byte("null"), nil
	}
}

func (m *DayMark) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch s {
	case "null":
		*m = Unmarked()
		return nil
	case "true":
		*m = Present()
		return nil
	case "false":
		*m = Absent()
		return nil
	}
	var qty decimal.Decimal
	if err := json.Unmarshal(data, &qty); err != nil {
		return fmt.Errorf("day mark must be bool or number: %w", err)
	}
	*m = Quantity(qty)
	return nil
}

// =============================================================================
// DAY RECORD - Both marks of one calendar date
// =============================================================================

// DayRecord holds the per-shift marks of a single date. A record with both
// shifts unmarked must not exist in an attendance map; the ledger deletes
// the date key once both become unmarked.
type DayRecord struct {
	Morning DayMark
	Evening DayMark
}

func (r DayRecord) Mark(s Shift) DayMark {
	if s == ShiftMorning {
		return r.Morning
	}
	return r.Evening
}

// WithMark returns a copy with one shift replaced, preserving the other.
func (r DayRecord) WithMark(s Shift, m DayMark) DayRecord {
	if s == ShiftMorning {
		r.Morning = m
	} else {
		r.Evening = m
	}
	return r
}

// Empty reports whether both shifts are unmarked.
func (r DayRecord) Empty() bool {
	return r.Morning.IsUnmarked() && r.Evening.IsUnmarked()
}

func (r DayRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]DayMark, 2)
	if !r.Morning.IsUnmarked() {
		out["morning"] = r.Morning
	}
	if !r.Evening.IsUnmarked() {
		out["evening"] = r.Evening
	}
	return json.Marshal(out)
}

func (r *DayRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		Morning *DayMark `json:"morning"`
		Evening *DayMark `json:"evening"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = DayRecord{}
	if aux.Morning != nil {
		r.Morning = *aux.Morning
	}
	if aux.Evening != nil {
		r.Evening = *aux.Evening
	}
	return nil
}

// =============================================================================
// SETTINGS - Worker knobs the computation depends on
// =============================================================================

type Settings struct {
	// MonthlySalary is the fixed pay for cook/maid, prorated by shift.
	MonthlySalary decimal.Decimal

	// RatePerLitre and DefaultLitres drive the milk payment model.
	RatePerLitre  decimal.Decimal
	DefaultLitres decimal.Decimal

	// IncludeSundays governs whether Sunday attendance entry is allowed.
	// It does NOT change the working-day denominator; see salary.go.
	IncludeSundays bool
}

// =============================================================================
// MONTH STATS - Derived output, never persisted
// =============================================================================

type MonthStats struct {
	WorkingDays        int
	MorningCount       int
	EveningCount       int
	TotalPresentShifts int
	TotalLitres        decimal.Decimal

	// TotalSalary is rounded to the nearest whole currency unit,
	// half away from zero.
	TotalSalary decimal.Decimal

	// MaxShifts is the proration denominator for cook/maid; zero for milk.
	MaxShifts int
}
