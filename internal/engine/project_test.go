package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectQuantities_MinimalCompliantTargets(t *testing.T) {
	cat := testCatalog(t)
	purchased := []string{"OAK-90", "TRIM-25"}

	targets, err := ProjectQuantities(TierFactoryBulk, cat, purchased, Scope{})
	require.NoError(t, err)
	require.Len(t, targets, 2)

	// ceil(29000 / (90*10.17)) = ceil(31.68...) = 32
	assert.Equal(t, int64(32), targets["OAK-90"])
	// ceil(29000 / (25*26)) = ceil(44.6...) = 45
	assert.Equal(t, int64(45), targets["TRIM-25"])

	// Re-feeding the targets through the engine must authorize the order.
	s := ComputeSummary(TierFactoryBulk, targets, cat)
	assert.True(t, s.Authorized)

	// And one box less on any line must not.
	for code := range targets {
		short := map[string]int64{code: targets[code] - 1}
		assert.False(t, ComputeSummary(TierFactoryBulk, short, cat).Authorized,
			"%s target is not minimal", code)
	}
}

func TestProjectQuantities_ExactBoundaryNoOvershoot(t *testing.T) {
	cat := testCatalog(t)

	// TRIM-25 at tier2: 14500 / 725 = 20 exactly, no rounding up past it.
	targets, err := ProjectQuantities(TierTradeWholesale, cat, []string{"TRIM-25"}, Scope{})
	require.NoError(t, err)
	assert.Equal(t, int64(20), targets["TRIM-25"])
}

func TestProjectQuantities_RetailUsesBoxMinimum(t *testing.T) {
	cat := testCatalog(t)

	targets, err := ProjectQuantities(TierStandardRetail, cat, []string{"OAK-90", "EDGE-1"}, Scope{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), targets["OAK-90"])
	assert.Equal(t, int64(2), targets["EDGE-1"])
}

func TestProjectQuantities_TierRequired(t *testing.T) {
	cat := testCatalog(t)

	_, err := ProjectQuantities(TierNone, cat, []string{"OAK-90"}, Scope{})
	assert.ErrorIs(t, err, ErrTierRequired)
}

func TestProjectQuantities_NoMovers(t *testing.T) {
	cat := testCatalog(t)

	_, err := ProjectQuantities(TierFactoryBulk, cat, nil, Scope{})
	assert.ErrorIs(t, err, ErrNoMovers)

	// History made entirely of codes the catalog no longer carries counts
	// as no movers too.
	_, err = ProjectQuantities(TierFactoryBulk, cat, []string{"RETIRED-1"}, Scope{})
	assert.ErrorIs(t, err, ErrNoMovers)
}

func TestProjectQuantities_CategoryScope(t *testing.T) {
	cat := testCatalog(t)
	purchased := []string{"OAK-90", "TRIM-25", "EDGE-1"}

	targets, err := ProjectQuantities(TierTradeWholesale, cat, purchased, Scope{Category: "trim"})
	require.NoError(t, err)
	assert.NotContains(t, targets, "OAK-90")
	assert.Contains(t, targets, "TRIM-25")
	assert.Contains(t, targets, "EDGE-1")

	// A scope matching nothing in history is indistinguishable from no movers.
	_, err = ProjectQuantities(TierTradeWholesale, cat, purchased, Scope{Category: "roofing"})
	assert.ErrorIs(t, err, ErrNoMovers)
}

func TestProjectQuantities_DeduplicatesHistory(t *testing.T) {
	cat := testCatalog(t)

	targets, err := ProjectQuantities(TierFactoryBulk, cat,
		[]string{"OAK-90", "OAK-90", "OAK-90"}, Scope{})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, int64(32), targets["OAK-90"])
}
