package engine

import (
	"errors"

	"github.com/haulstone/tierline/internal/catalog"
)

// Projection failure signals. Both are preconditions the caller must surface
// to the buyer; neither is a silent no-op.
var (
	// ErrTierRequired is returned when projection runs without a selected tier.
	ErrTierRequired = errors.New("a tier must be selected before projecting quantities")

	// ErrNoMovers is returned when no SKU in scope has any purchase history.
	// Distinct from a successful projection that changes nothing.
	ErrNoMovers = errors.New("no movers found in purchase history")
)

// Scope restricts projection to a catalog category. The zero value covers
// the whole catalog.
type Scope struct {
	Category string
}

func (s Scope) matches(it catalog.Item) bool {
	return s.Category == "" || it.Category == s.Category
}

// ProjectQuantities proposes the smallest quantity per SKU that satisfies
// the tier's minimum-order rule, for every SKU that appears at least once in
// purchase history. Capital preservation is the goal: never a box more than
// the rule demands.
//
// purchased is the set of SKU codes with ledger history (duplicates are
// fine). Codes not in the catalog are skipped. Current draft quantities are
// deliberately not an input - targets are computed from first principles and
// the caller decides how to merge them.
func ProjectQuantities(tier Tier, cat *catalog.Catalog, purchased []string, scope Scope) (map[string]int64, error) {
	rule, ok := tierRules[tier]
	if !ok {
		return nil, ErrTierRequired
	}

	targets := make(map[string]int64)
	for _, code := range purchased {
		if _, done := targets[code]; done {
			continue
		}
		it, found := cat.Lookup(code)
		if !found || !scope.matches(it) {
			continue
		}
		if qty := targetQuantity(rule, it); qty > 0 {
			targets[code] = qty
		}
	}

	if len(targets) == 0 {
		return nil, ErrNoMovers
	}
	return targets, nil
}

// targetQuantity computes the smallest compliant box count for an item under
// a tier rule: the fixed box minimum for quantity-gated tiers, otherwise
// ceil(minValue / boxValue).
func targetQuantity(rule tierRule, it catalog.Item) int64 {
	if rule.minBoxes > 0 {
		return rule.minBoxes
	}
	boxValue := it.BoxMeterage.Mul(rule.unitPrice(it))
	if !boxValue.IsPositive() {
		return 0
	}
	return rule.minValue.Div(boxValue).Ceil().IntPart()
}
