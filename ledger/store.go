/*
store.go - The ledger store: lifecycle, mutations, day queries

PURPOSE:
  Holds the in-memory worker set and applies atomic mutations. Every
  mutation updates memory first, then hands a full JSON snapshot to the
  background writer (persist.go). Persistence is best-effort: a failed
  write is logged and memory stays authoritative for the session.

LIFECYCLE:
  uninitialized -> loading -> ready

  NewStore returns an uninitialized store. Load performs the versioned
  snapshot read (migrate.go) and flips the store to ready. Operations
  issued before ready return ErrNotReady.

INVARIANTS:
  - A date key exists in attendance only while at least one shift is marked;
    unmarking both deletes the key.
  - Settings can never disable both shifts.
  - Payments are strictly positive and append-only.
  - Sunday entries are rejected unless the worker includes Sundays.
*/
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/household-ledger/engine"
)

type lifecycleState int

const (
	stateUninitialized lifecycleState = iota
	stateLoading
	stateReady
)

// Store owns the canonical worker set. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	snapshots SnapshotStore
	log       *logrus.Logger

	state   lifecycleState
	workers map[engine.WorkerKind]*WorkerProfile
	active  engine.WorkerKind

	writer *snapshotWriter

	// now is swappable for deterministic payment timestamps in tests.
	now func() time.Time
}

// NewStore creates an uninitialized store. Call Load before anything else.
func NewStore(snapshots SnapshotStore, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{
		snapshots: snapshots,
		log:       log,
		active:    engine.KindCook,
		writer:    newSnapshotWriter(snapshots, log),
		now:       time.Now,
	}
}

// Load reads the newest available snapshot version, upgrading older blobs
// as needed, and moves the store to ready. A miss on every known version
// is a fresh install, not an error.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateReady {
		return nil
	}
	s.state = stateLoading

	workers, err := loadOrMigrate(ctx, s.snapshots, s.log)
	if err != nil {
		s.state = stateUninitialized
		return fmt.Errorf("load worker snapshot: %w", err)
	}

	s.workers = workers
	s.state = stateReady
	return nil
}

// IsReady reports whether the store has finished loading.
func (s *Store) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == stateReady
}

// Close drains pending snapshot writes and stops the writer.
func (s *Store) Close() {
	s.writer.close()
}

// Flush blocks until all snapshot writes issued so far have been attempted.
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// =============================================================================
// ACTIVE WORKER
// =============================================================================

// ActiveWorker returns the currently selected worker kind. Selection is a
// UI convenience and is not persisted.
func (s *Store) ActiveWorker() engine.WorkerKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *Store) SetActiveWorker(kind engine.WorkerKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownWorker, kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = kind
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Worker returns a deep copy of one profile.
func (s *Store) Worker(kind engine.WorkerKind) (*WorkerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.workerLocked(kind)
	if err != nil {
		return nil, err
	}
	return w.clone(), nil
}

// Workers returns deep copies of all profiles keyed by kind.
func (s *Store) Workers() (map[engine.WorkerKind]*WorkerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != stateReady {
		return nil, ErrNotReady
	}
	out := make(map[engine.WorkerKind]*WorkerProfile, len(s.workers))
	for kind, w := range s.workers {
		out[kind] = w.clone()
	}
	return out, nil
}

// GetDayStatus returns the marks for one date. A date with no entry yields
// the unmarked default record.
func (s *Store) GetDayStatus(kind engine.WorkerKind, date string) (engine.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.workerLocked(kind)
	if err != nil {
		return engine.DayRecord{}, err
	}
	if _, err := parseDay(date); err != nil {
		return engine.DayRecord{}, err
	}
	return w.Attendance[date], nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// SetDayStatus merges one shift's mark into the date's record, preserving
// the other shift. Unmarking both shifts deletes the date entirely.
// The mutation completes against memory; persistence happens asynchronously.
func (s *Store) SetDayStatus(kind engine.WorkerKind, date string, shift engine.Shift, mark engine.DayMark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.workerLocked(kind)
	if err != nil {
		return err
	}
	if !shift.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownShift, shift)
	}
	day, err := parseDay(date)
	if err != nil {
		return err
	}
	// Unset passes the Sunday rule: marks made while Sundays were allowed
	// must stay clearable after the setting is turned off.
	if engine.IsSunday(day) && !w.IncludeSundays && !mark.IsUnmarked() {
		return fmt.Errorf("%w: %s", ErrSundayDisabled, date)
	}

	rec := w.Attendance[date].WithMark(shift, mark)
	if rec.Empty() {
		delete(w.Attendance, date)
	} else {
		w.Attendance[date] = rec
	}

	s.persistLocked()
	return nil
}

// UpdateSettings shallow-merges the patch into the worker's settings.
// A patch that would disable both shifts, or carries a negative number,
// is rejected with no state change.
func (s *Store) UpdateSettings(kind engine.WorkerKind, patch SettingsPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.workerLocked(kind)
	if err != nil {
		return err
	}

	if patch.Shifts != nil && patch.Shifts.NoneEnabled() {
		return ErrNoShiftsEnabled
	}
	for _, v := range []*decimal.Decimal{patch.MonthlySalary, patch.RatePerLitre, patch.DefaultLitres} {
		if v != nil && v.IsNegative() {
			return ErrNegativeSetting
		}
	}

	if patch.MonthlySalary != nil {
		w.MonthlySalary = *patch.MonthlySalary
	}
	if patch.RatePerLitre != nil {
		w.RatePerLitre = *patch.RatePerLitre
	}
	if patch.DefaultLitres != nil {
		w.DefaultLitres = *patch.DefaultLitres
	}
	if patch.Shifts != nil {
		w.Shifts = *patch.Shifts
	}
	if patch.IncludeSundays != nil {
		w.IncludeSundays = *patch.IncludeSundays
	}

	s.persistLocked()
	return nil
}

// RecordPayment appends a payment to the worker's log.
func (s *Store) RecordPayment(kind engine.WorkerKind, amount decimal.Decimal, date string) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.workerLocked(kind)
	if err != nil {
		return Payment{}, err
	}
	if !amount.IsPositive() {
		return Payment{}, fmt.Errorf("%w: %s", ErrNonPositiveAmount, amount)
	}
	if _, err := parseDay(date); err != nil {
		return Payment{}, err
	}

	p := Payment{
		ID:         newPaymentID(),
		Amount:     amount,
		Date:       date,
		RecordedAt: s.now().UnixMilli(),
	}
	w.Payments = append(w.Payments, p)

	s.persistLocked()
	return p, nil
}

// =============================================================================
// INTERNALS
// =============================================================================

// parseDay validates an ISO date key, tagging failures as validation errors.
func parseDay(date string) (time.Time, error) {
	day, err := engine.ParseDay(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return day, nil
}

// workerLocked resolves a kind to its live profile. Caller holds the lock.
func (s *Store) workerLocked(kind engine.WorkerKind) (*WorkerProfile, error) {
	if s.state != stateReady {
		return nil, ErrNotReady
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorker, kind)
	}
	return s.workers[kind], nil
}

// persistLocked serializes the full worker set and queues it for writing.
// The snapshot is taken under the lock, so queued payloads are always in
// mutation order and the last one wins.
func (s *Store) persistLocked() {
	payload, err := encodeSnapshot(s.workers)
	if err != nil {
		s.log.WithError(err).Error("failed to encode worker snapshot")
		return
	}
	s.writer.enqueue(SnapshotKeyV4, payload)
}
