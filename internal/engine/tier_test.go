package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulstone/tierline/internal/catalog"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		input   string
		want    Tier
		wantErr bool
	}{
		{input: "factory-bulk", want: TierFactoryBulk},
		{input: "trade-wholesale", want: TierTradeWholesale},
		{input: "standard-retail", want: TierStandardRetail},
		{input: "", want: TierNone},
		{input: "platinum", wantErr: true},
		{input: "Factory-Bulk", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseTier(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got)
	}
}

func TestTierSelected(t *testing.T) {
	assert.False(t, TierNone.Selected())
	for _, tier := range Tiers {
		assert.True(t, tier.Selected(), "tier %s", tier)
	}
}

func TestTierUnitPrice(t *testing.T) {
	it := catalog.Item{
		Code:       "X-1",
		Tier1Price: decimal.NewFromInt(10),
		Tier2Price: decimal.NewFromInt(20),
		Tier3Price: decimal.NewFromInt(30),
	}

	assert.True(t, TierFactoryBulk.UnitPrice(it).Equal(decimal.NewFromInt(10)))
	assert.True(t, TierTradeWholesale.UnitPrice(it).Equal(decimal.NewFromInt(20)))
	assert.True(t, TierStandardRetail.UnitPrice(it).Equal(decimal.NewFromInt(30)))
	assert.True(t, TierNone.UnitPrice(it).IsZero())
}
