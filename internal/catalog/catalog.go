package catalog

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Item is one sellable SKU. Items are reference data: loaded once at startup
// and never mutated by the engine.
type Item struct {
	Code         string          `json:"code"`
	Name         string          `json:"name,omitempty"`
	Category     string          `json:"category,omitempty"`
	BoxMeterage  decimal.Decimal `json:"box_meterage"` // linear meters per box
	UnitsPerPack int64           `json:"units_per_pack"`
	Tier1Price   decimal.Decimal `json:"tier1_price"` // currency per meter
	Tier2Price   decimal.Decimal `json:"tier2_price"`
	Tier3Price   decimal.Decimal `json:"tier3_price"`
	Premium      bool            `json:"premium,omitempty"`
}

// Catalog is a read-only SKU lookup.
type Catalog struct {
	items map[string]Item
	codes []string // sorted for deterministic iteration
}

// New builds a catalog from a list of items.
// Duplicate codes are rejected - the catalog is the identity source for SKUs.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{items: make(map[string]Item, len(items))}
	for _, it := range items {
		if _, dup := c.items[it.Code]; dup {
			return nil, fmt.Errorf("duplicate catalog code %q", it.Code)
		}
		c.items[it.Code] = it
		c.codes = append(c.codes, it.Code)
	}
	sort.Strings(c.codes)
	return c, nil
}

// Lookup returns the item for a code, if present.
func (c *Catalog) Lookup(code string) (Item, bool) {
	it, ok := c.items[code]
	return it, ok
}

// Codes returns all SKU codes in sorted order.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
