package billing_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobiquip/backoffice-api/internal/domain/billing"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
)

func snapshotWithFee(fee string) billing.Snapshot {
	return billing.Snapshot{
		Parts: []billing.PartLine{{Quantity: 1, UnitCost: dec("100")}},
		Adjustments: billing.Adjustments{
			CalloutFee:     dec(fee),
			DiscountType:   entity.DiscountPercentage,
			VATRatePercent: dec("20"),
		},
	}
}

// TestRecalculator_CoalescesRapidEdits: three edits inside one debounce
// window must produce exactly one committed recomputation, built from the
// last snapshot.
func TestRecalculator_CoalescesRapidEdits(t *testing.T) {
	var commits int32
	r := billing.NewRecalculator(30*time.Millisecond, func(billing.Totals) {
		atomic.AddInt32(&commits, 1)
	})
	defer r.Close()

	r.Apply(snapshotWithFee("5"))
	r.Apply(snapshotWithFee("10"))
	r.Apply(snapshotWithFee("20"))
	assert.Equal(t, billing.StateRecomputing, r.State())

	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&commits), "rapid edits must coalesce into one commit")
	assert.Equal(t, billing.StateSettled, r.State())
	// Last write wins: fee 20 -> subtotal 120, net 144.
	assert.True(t, r.Totals().NetTotal.Equal(dec("144")), "netTotal = %s", r.Totals().NetTotal)
}

// TestRecalculator_SuppressesImmaterialChange: reapplying an equivalent
// snapshot recomputes but must not commit again, and settles back to idle.
func TestRecalculator_SuppressesImmaterialChange(t *testing.T) {
	var commits int32
	r := billing.NewRecalculator(10*time.Millisecond, func(billing.Totals) {
		atomic.AddInt32(&commits, 1)
	})
	defer r.Close()

	r.Apply(snapshotWithFee("20"))
	r.Flush()
	require.Equal(t, int32(1), atomic.LoadInt32(&commits))

	r.Apply(snapshotWithFee("20"))
	r.Flush()

	assert.Equal(t, int32(1), atomic.LoadInt32(&commits), "unchanged totals must not propagate")
	assert.Equal(t, billing.StateIdle, r.State())
	require.NoError(t, r.Err())
}

// TestRecalculator_GuardNeverChangesValues: the guard only suppresses
// writes; the committed totals are exactly what Compute produces.
func TestRecalculator_GuardNeverChangesValues(t *testing.T) {
	r := billing.NewRecalculator(10*time.Millisecond, nil)
	defer r.Close()

	snap := snapshotWithFee("20")
	r.Apply(snap)
	r.Flush()

	want, err := billing.Compute(snap.Services, snap.Parts, snap.Adjustments)
	require.NoError(t, err)
	assert.True(t, r.Totals().NetTotal.Equal(want.NetTotal))
	assert.True(t, r.Totals().SubTotal.Equal(want.SubTotal))
}

// TestRecalculator_CloseDiscardsPendingWork: closing mid-debounce must drop
// the in-flight recomputation, mirroring teardown during an edit.
func TestRecalculator_CloseDiscardsPendingWork(t *testing.T) {
	var commits int32
	r := billing.NewRecalculator(30*time.Millisecond, func(billing.Totals) {
		atomic.AddInt32(&commits, 1)
	})

	r.Apply(snapshotWithFee("20"))
	r.Close()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&commits), "closed session must not commit")
	assert.Equal(t, billing.StateIdle, r.State())

	// Applies after Close are no-ops.
	r.Apply(snapshotWithFee("40"))
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&commits))
}

// TestRecalculator_FlushOnIdleIsNoop: Flush without a pending edit does
// nothing.
func TestRecalculator_FlushOnIdleIsNoop(t *testing.T) {
	var commits int32
	r := billing.NewRecalculator(10*time.Millisecond, func(billing.Totals) {
		atomic.AddInt32(&commits, 1)
	})
	defer r.Close()

	r.Flush()
	assert.Equal(t, int32(0), atomic.LoadInt32(&commits))
	assert.Equal(t, billing.StateIdle, r.State())
}
