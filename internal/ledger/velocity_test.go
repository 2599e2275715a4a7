package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulstone/tierline/internal/engine"
)

func velocityRecords() []Record {
	line := func(code string, boxes int64, value int64) engine.Line {
		return engine.Line{
			Code:          code,
			QuantityBoxes: boxes,
			LineValue:     decimal.NewFromInt(value),
			Compliant:     true,
			Status:        engine.StatusVerified,
		}
	}
	return []Record{
		{
			ID: "order-1", Tier: engine.TierFactoryBulk,
			TotalValue: decimal.NewFromInt(40000),
			Lines:      []engine.Line{line("OAK-90", 32, 30000), line("TRIM-25", 10, 10000)},
		},
		{
			ID: "order-2", Tier: engine.TierFactoryBulk,
			TotalValue: decimal.NewFromInt(35000),
			Lines:      []engine.Line{line("OAK-90", 40, 35000)},
		},
		{
			ID: "order-3", Tier: engine.TierTradeWholesale,
			TotalValue: decimal.NewFromInt(25000),
			Lines:      []engine.Line{line("TRIM-25", 20, 15000), line("EDGE-1", 50, 10000)},
		},
	}
}

func TestVelocity(t *testing.T) {
	stats := Velocity(velocityRecords())
	require.Len(t, stats, 3)

	oak := stats["OAK-90"]
	assert.Equal(t, int64(2), oak.Appearances)
	assert.Equal(t, int64(72), oak.TotalBoxes)
	assert.True(t, oak.TotalValuation.Equal(decimal.NewFromInt(65000)))

	trim := stats["TRIM-25"]
	assert.Equal(t, int64(2), trim.Appearances)
	assert.Equal(t, int64(30), trim.TotalBoxes)
	assert.True(t, trim.TotalValuation.Equal(decimal.NewFromInt(25000)))

	edge := stats["EDGE-1"]
	assert.Equal(t, int64(1), edge.Appearances)
	assert.Equal(t, int64(50), edge.TotalBoxes)
}

func TestVelocity_OrderIndependent(t *testing.T) {
	records := velocityRecords()
	reversed := []Record{records[2], records[1], records[0]}

	a := Velocity(records)
	b := Velocity(reversed)
	require.Equal(t, len(a), len(b))
	for code, st := range a {
		assert.Equal(t, st.Appearances, b[code].Appearances)
		assert.Equal(t, st.TotalBoxes, b[code].TotalBoxes)
		assert.True(t, st.TotalValuation.Equal(b[code].TotalValuation))
	}
}

func TestTopN(t *testing.T) {
	stats := Velocity(velocityRecords())

	top := TopN(stats, 2)
	require.Len(t, top, 2)
	// OAK-90 and TRIM-25 tie at 2 appearances; OAK-90 wins on boxes (72 > 30).
	assert.Equal(t, "OAK-90", top[0].Code)
	assert.Equal(t, "TRIM-25", top[1].Code)

	// n beyond the stat count returns everything.
	all := TopN(stats, 10)
	assert.Len(t, all, 3)
	assert.Equal(t, "EDGE-1", all[2].Code)

	assert.Empty(t, TopN(stats, 0))
	assert.Empty(t, TopN(nil, 5))
}

func TestTopN_CodeTieBreak(t *testing.T) {
	stats := map[string]Stat{
		"B-2": {Code: "B-2", Appearances: 1, TotalBoxes: 5, TotalValuation: decimal.Zero},
		"A-1": {Code: "A-1", Appearances: 1, TotalBoxes: 5, TotalValuation: decimal.Zero},
	}
	top := TopN(stats, -1)
	require.Len(t, top, 2)
	assert.Equal(t, "A-1", top[0].Code)
	assert.Equal(t, "B-2", top[1].Code)
}

func TestFastMoverThreshold(t *testing.T) {
	stats := Velocity(velocityRecords())

	// Highest volume is OAK-90 at 72 boxes; threshold is 50.4.
	threshold := FastMoverThreshold(stats)
	assert.True(t, threshold.Equal(decimal.NewFromFloat(50.4)), "threshold %s", threshold)

	assert.True(t, stats["OAK-90"].FastMover(threshold))
	assert.False(t, stats["TRIM-25"].FastMover(threshold), "30 boxes is below 50.4")
	assert.False(t, stats["EDGE-1"].FastMover(threshold), "50 boxes is just below 50.4")

	assert.True(t, FastMoverThreshold(nil).IsZero())
}

func TestTotalSpentAndContribution(t *testing.T) {
	records := velocityRecords()
	total := TotalSpent(records)
	assert.True(t, total.Equal(decimal.NewFromInt(100000)), "total %s", total)

	stats := Velocity(records)
	oakShare := ContributionPercent(stats["OAK-90"], total)
	assert.True(t, oakShare.Equal(decimal.NewFromInt(65)), "share %s", oakShare)

	sum := decimal.Zero
	for _, st := range stats {
		sum = sum.Add(ContributionPercent(st, total))
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(100)), "shares sum to 100, got %s", sum)

	assert.True(t, ContributionPercent(stats["OAK-90"], decimal.Zero).IsZero())
	assert.True(t, TotalSpent(nil).IsZero())
}
