/*
migrate.go - Versioned snapshot keys and the upgrade chain

PURPOSE:
  The worker set is persisted as one JSON blob under a version-suffixed
  key. A schema revision introduces a new key; startup reads the current
  key first and falls back through prior versions in descending order,
  upgrading the first blob it finds. No hit anywhere means fresh install.

THE CHAIN:
  tracker_workers_v4  current layout (this codebase)
  tracker_workers_v2  legacy layout missing per-litre fields

  Upgrades fill newly introduced fields with documented defaults:
  ratePerLitre -> 0, defaultLitre -> 1; the milk profile specifically
  gets ratePerLitre 60 when absent and includeSundays forced true.

  The chain is an explicit ordered list so it stays unit-testable
  independent of storage.
*/
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/household-ledger/engine"
)

// Snapshot version keys. Key names are shared with the pre-existing
// storage blobs and must not change retroactively.
const (
	SnapshotKeyV4 = "tracker_workers_v4" // current layout
	SnapshotKeyV2 = "tracker_workers_v2" // legacy, missing per-litre fields
)

type snapshotVersion struct {
	key string

	// upgrade mutates a decoded legacy blob into the current layout.
	// Nil for the current version.
	upgrade func(map[engine.WorkerKind]*WorkerProfile)
}

// snapshotVersions is the migration fallback order: current key first,
// then prior versions descending.
var snapshotVersions = []snapshotVersion{
	{key: SnapshotKeyV4},
	{key: SnapshotKeyV2, upgrade: upgradeFromV2},
}

// loadOrMigrate reads the newest available snapshot and returns the worker
// set, upgraded and normalized. Every miss falls through; a total miss
// returns the fixed default profiles.
func loadOrMigrate(ctx context.Context, snapshots SnapshotStore, log *logrus.Logger) (map[engine.WorkerKind]*WorkerProfile, error) {
	for _, ver := range snapshotVersions {
		payload, err := snapshots.Load(ctx, ver.key)
		if errors.Is(err, ErrSnapshotNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", ver.key, err)
		}

		workers, err := decodeSnapshot(payload)
		if err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", ver.key, err)
		}
		if ver.upgrade != nil {
			ver.upgrade(workers)
			log.WithField("from", ver.key).Info("migrated worker snapshot to current version")
		}
		normalizeProfiles(workers)
		return workers, nil
	}

	log.Info("no worker snapshot found under any known version; initializing defaults")
	return DefaultProfiles(), nil
}

// =============================================================================
// CODEC
// =============================================================================

func encodeSnapshot(workers map[engine.WorkerKind]*WorkerProfile) ([]byte, error) {
	return json.Marshal(workers)
}

func decodeSnapshot(payload []byte) (map[engine.WorkerKind]*WorkerProfile, error) {
	var workers map[engine.WorkerKind]*WorkerProfile
	if err := json.Unmarshal(payload, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

// =============================================================================
// UPGRADES
// =============================================================================

// upgradeFromV2 fills the fields the v2 layout did not have. Mirrors the
// defaulting the storage blobs have always used: zero means unset for the
// per-litre fields.
func upgradeFromV2(workers map[engine.WorkerKind]*WorkerProfile) {
	for kind, w := range workers {
		if w == nil {
			continue
		}
		if w.DefaultLitres.IsZero() {
			w.DefaultLitres = decimal.NewFromInt(1)
		}
		if kind == engine.KindMilk {
			if w.RatePerLitre.IsZero() {
				w.RatePerLitre = decimal.NewFromInt(60)
			}
			w.IncludeSundays = true
		}
	}
}

// normalizeProfiles repairs structural gaps after any decode: missing
// profiles get defaults, nil maps and slices become empty, and attendance
// entries with both shifts unmarked are dropped.
func normalizeProfiles(workers map[engine.WorkerKind]*WorkerProfile) {
	defaults := DefaultProfiles()
	for _, kind := range engine.Kinds() {
		w, ok := workers[kind]
		if !ok || w == nil {
			workers[kind] = defaults[kind]
			continue
		}
		if w.Attendance == nil {
			w.Attendance = map[string]engine.DayRecord{}
		}
		if w.Payments == nil {
			w.Payments = []Payment{}
		}
		for date, rec := range w.Attendance {
			if rec.Empty() {
				delete(w.Attendance, date)
			}
		}
	}
	for kind := range workers {
		if !kind.Valid() {
			delete(workers, kind)
		}
	}
}
