package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/haulstone/tierline/internal/catalog"
)

// Tier classifies a buyer and determines both the price column and the
// minimum-order rule applied to every line.
type Tier string

const (
	// TierNone means no tier has been selected; nothing can be priced.
	TierNone Tier = ""

	TierFactoryBulk    Tier = "factory-bulk"
	TierTradeWholesale Tier = "trade-wholesale"
	TierStandardRetail Tier = "standard-retail"
)

// Line status messages surfaced to buyers. The exporter and UI render these
// verbatim, so they are part of the contract.
const (
	StatusVerified    = "PROFILE VERIFIED"
	StatusInefficient = "INEFFICIENT VOLUME"
)

// tierRule carries the per-tier strategy: which catalog price column applies
// and what makes a line compliant. FactoryBulk and TradeWholesale gate on
// line value; StandardRetail gates on box count. The asymmetry is
// intentional: retail orders are measured in boxes because their values are
// inherently small.
type tierRule struct {
	unitPrice func(catalog.Item) decimal.Decimal
	minValue  decimal.Decimal // zero when the tier gates on quantity
	minBoxes  int64           // zero when the tier gates on value
}

func (r tierRule) compliant(qty int64, lineValue decimal.Decimal) bool {
	if r.minBoxes > 0 {
		return qty >= r.minBoxes
	}
	return lineValue.GreaterThanOrEqual(r.minValue)
}

var tierRules = map[Tier]tierRule{
	TierFactoryBulk: {
		unitPrice: func(it catalog.Item) decimal.Decimal { return it.Tier1Price },
		minValue:  decimal.NewFromInt(29000),
	},
	TierTradeWholesale: {
		unitPrice: func(it catalog.Item) decimal.Decimal { return it.Tier2Price },
		minValue:  decimal.NewFromInt(14500),
	},
	TierStandardRetail: {
		unitPrice: func(it catalog.Item) decimal.Decimal { return it.Tier3Price },
		minBoxes:  2,
	},
}

// Tiers lists the selectable tiers in display order.
var Tiers = []Tier{TierFactoryBulk, TierTradeWholesale, TierStandardRetail}

// ParseTier converts user input to a Tier. The empty string maps to TierNone.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierNone, TierFactoryBulk, TierTradeWholesale, TierStandardRetail:
		return Tier(s), nil
	}
	return TierNone, fmt.Errorf("unknown tier %q: must be one of %v", s, Tiers)
}

// Selected reports whether a real tier has been chosen.
func (t Tier) Selected() bool {
	_, ok := tierRules[t]
	return ok
}

// UnitPrice returns the catalog price column for this tier.
// Returns zero for TierNone.
func (t Tier) UnitPrice(it catalog.Item) decimal.Decimal {
	r, ok := tierRules[t]
	if !ok {
		return decimal.Zero
	}
	return r.unitPrice(it)
}
