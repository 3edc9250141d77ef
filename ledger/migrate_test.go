package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/household-ledger/engine"
	"github.com/warp/household-ledger/ledger"
	memstore "github.com/warp/household-ledger/ledger/store"
)

// =============================================================================
// MIGRATION CHAIN TESTS
// =============================================================================

// v2Blob is a legacy snapshot in the original storage layout: bare
// numbers, boolean day marks, no per-litre fields.
const v2Blob = `{
	"cook": {
		"attendance": {"2025-01-06": {"morning": true, "evening": false}},
		"salary": 6500,
		"payments": [{"id": "p1", "amount": 500, "date": "2025-01-10", "timestamp": 1736500000000}],
		"shifts": {"morning": true, "evening": true},
		"includeSundays": false
	},
	"maid": {
		"attendance": {},
		"salary": 3000,
		"payments": [],
		"shifts": {"morning": true, "evening": false},
		"includeSundays": false
	},
	"milk": {
		"attendance": {"2025-01-05": {"morning": 1.5}},
		"salary": 0,
		"payments": [],
		"shifts": {"morning": true, "evening": true},
		"includeSundays": false
	}
}`

func TestLoad_MigratesFromV2(t *testing.T) {
	// GIVEN: only a v2 blob exists
	// WHEN: the store loads
	// THEN: data is preserved and new fields get documented defaults

	mem := memstore.NewMemory()
	mem.Seed(ledger.SnapshotKeyV2, []byte(v2Blob))

	s := ledger.NewStore(mem, quietLogger())
	require.NoError(t, s.Load(context.Background()))
	t.Cleanup(s.Close)

	cook, err := s.Worker(engine.KindCook)
	require.NoError(t, err)
	assert.True(t, cook.MonthlySalary.Equal(dec(6500)))
	assert.True(t, cook.DefaultLitres.Equal(dec(1)), "defaultLitre backfills to 1")
	assert.True(t, cook.RatePerLitre.IsZero(), "non-milk rate backfills to 0")
	assert.False(t, cook.IncludeSundays)
	require.Len(t, cook.Payments, 1)
	assert.True(t, cook.Payments[0].Amount.Equal(dec(500)))

	rec, err := s.GetDayStatus(engine.KindCook, "2025-01-06")
	require.NoError(t, err)
	assert.True(t, rec.Morning.IsPresent())
	assert.True(t, rec.Evening.IsAbsent())

	milk, err := s.Worker(engine.KindMilk)
	require.NoError(t, err)
	assert.True(t, milk.RatePerLitre.Equal(dec(60)), "milk rate backfills to 60")
	assert.True(t, milk.IncludeSundays, "milk is forced to include Sundays")

	milkRec, err := s.GetDayStatus(engine.KindMilk, "2025-01-05")
	require.NoError(t, err)
	assert.True(t, milkRec.Morning.IsQuantity())
}

func TestLoad_PrefersCurrentVersion(t *testing.T) {
	// GIVEN: both v4 and v2 blobs exist
	// THEN: v4 wins and no upgrade defaulting is applied to it

	mem := memstore.NewMemory()
	mem.Seed(ledger.SnapshotKeyV2, []byte(v2Blob))
	mem.Seed(ledger.SnapshotKeyV4, []byte(`{
		"cook": {"attendance": {}, "salary": 8000, "ratePerLitre": 0, "defaultLitre": 1,
		         "payments": [], "shifts": {"morning": true, "evening": true}, "includeSundays": true},
		"maid": {"attendance": {}, "salary": 3000, "ratePerLitre": 0, "defaultLitre": 1,
		         "payments": [], "shifts": {"morning": true, "evening": true}, "includeSundays": false},
		"milk": {"attendance": {}, "salary": 0, "ratePerLitre": 55, "defaultLitre": 2,
		         "payments": [], "shifts": {"morning": true, "evening": true}, "includeSundays": true}
	}`))

	s := ledger.NewStore(mem, quietLogger())
	require.NoError(t, s.Load(context.Background()))
	t.Cleanup(s.Close)

	cook, err := s.Worker(engine.KindCook)
	require.NoError(t, err)
	assert.True(t, cook.MonthlySalary.Equal(dec(8000)))
	assert.True(t, cook.IncludeSundays)

	milk, err := s.Worker(engine.KindMilk)
	require.NoError(t, err)
	assert.True(t, milk.RatePerLitre.Equal(dec(55)), "v4 rate must not be re-defaulted")
	assert.True(t, milk.DefaultLitres.Equal(dec(2)))
}

func TestLoad_MissingProfileGetsDefaults(t *testing.T) {
	// A blob missing a worker (or carrying junk kinds) is repaired on load.

	mem := memstore.NewMemory()
	mem.Seed(ledger.SnapshotKeyV4, []byte(`{
		"cook": {"attendance": {}, "salary": 7200, "payments": [],
		         "shifts": {"morning": true, "evening": true}},
		"gardener": {"attendance": {}, "salary": 1, "payments": [],
		             "shifts": {"morning": true, "evening": true}}
	}`))

	s := ledger.NewStore(mem, quietLogger())
	require.NoError(t, s.Load(context.Background()))
	t.Cleanup(s.Close)

	workers, err := s.Workers()
	require.NoError(t, err)
	require.Len(t, workers, 3)
	assert.True(t, workers[engine.KindCook].MonthlySalary.Equal(dec(7200)))
	assert.True(t, workers[engine.KindMaid].MonthlySalary.Equal(dec(3000)))
	assert.True(t, workers[engine.KindMilk].RatePerLitre.Equal(dec(60)))
}

func TestMutation_PersistsUnderCurrentKey(t *testing.T) {
	s, mem := newReadyStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetDayStatus(engine.KindCook, "2025-02-03", engine.ShiftMorning, engine.Present()))
	require.NoError(t, s.Flush(ctx))

	payload, err := mem.Load(ctx, ledger.SnapshotKeyV4)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "2025-02-03")

	_, err = mem.Load(ctx, ledger.SnapshotKeyV2)
	assert.ErrorIs(t, err, ledger.ErrSnapshotNotFound)
}
