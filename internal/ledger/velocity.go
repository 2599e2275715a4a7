package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Stat is the derived movement profile of one SKU. Stats are never
// persisted; they are recomputed from the records on demand.
type Stat struct {
	Code           string          `json:"code"`
	Appearances    int64           `json:"appearances"` // orders the SKU appeared in
	TotalBoxes     int64           `json:"total_boxes"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

// fastMoverRatio: a SKU is a fast mover when its box volume reaches 70% of
// the highest-volume SKU.
var fastMoverRatio = decimal.NewFromFloat(0.7)

// Velocity aggregates per-SKU movement stats across all records.
// The aggregation is order-independent.
func Velocity(records []Record) map[string]Stat {
	stats := make(map[string]Stat)
	for _, rec := range records {
		for _, line := range rec.Lines {
			st, ok := stats[line.Code]
			if !ok {
				st = Stat{Code: line.Code, TotalValuation: decimal.Zero}
			}
			st.Appearances++
			st.TotalBoxes += line.QuantityBoxes
			st.TotalValuation = st.TotalValuation.Add(line.LineValue)
			stats[line.Code] = st
		}
	}
	return stats
}

// TopN returns the n most frequently ordered SKUs, sorted by appearance
// count descending, ties broken by total boxes descending, then code
// ascending for determinism.
func TopN(stats map[string]Stat, n int) []Stat {
	out := make([]Stat, 0, len(stats))
	for _, st := range stats {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Appearances != out[j].Appearances {
			return out[i].Appearances > out[j].Appearances
		}
		if out[i].TotalBoxes != out[j].TotalBoxes {
			return out[i].TotalBoxes > out[j].TotalBoxes
		}
		return out[i].Code < out[j].Code
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// FastMoverThreshold returns 70% of the highest per-SKU box volume.
// Zero when there are no stats.
func FastMoverThreshold(stats map[string]Stat) decimal.Decimal {
	var maxBoxes int64
	for _, st := range stats {
		if st.TotalBoxes > maxBoxes {
			maxBoxes = st.TotalBoxes
		}
	}
	return decimal.NewFromInt(maxBoxes).Mul(fastMoverRatio)
}

// FastMover reports whether the stat's box volume meets the threshold.
func (s Stat) FastMover(threshold decimal.Decimal) bool {
	return decimal.NewFromInt(s.TotalBoxes).GreaterThanOrEqual(threshold)
}

// TotalSpent sums the total value of every record in the ledger.
func TotalSpent(records []Record) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.TotalValue)
	}
	return total
}

// ContributionPercent is the share of total ledger spend attributable to one
// SKU, in percent. Zero when totalSpent is zero.
func ContributionPercent(s Stat, totalSpent decimal.Decimal) decimal.Decimal {
	if !totalSpent.IsPositive() {
		return decimal.Zero
	}
	return s.TotalValuation.Div(totalSpent).Mul(decimal.NewFromInt(100))
}
