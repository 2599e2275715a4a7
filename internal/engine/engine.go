package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/haulstone/tierline/internal/catalog"
)

// metersPerPiece is the fixed sales convention: every piece is two linear
// meters, regardless of profile.
var metersPerPiece = decimal.NewFromInt(2)

// Line is one priced and checked order position. Lines have no independent
// identity: they are derived entirely from (tier, quantity, catalog item) and
// recomputed on every change.
type Line struct {
	Code          string          `json:"code"`
	Name          string          `json:"name,omitempty"`
	QuantityBoxes int64           `json:"quantity_boxes"`
	RatePerMeter  decimal.Decimal `json:"rate_per_meter"`
	LineValue     decimal.Decimal `json:"line_value"`
	Pieces        decimal.Decimal `json:"pieces"`
	Packs         int64           `json:"packs"`
	Compliant     bool            `json:"compliant"`
	Status        string          `json:"status"`
}

// Summary aggregates all lines with quantity > 0. It is recomputed as a
// whole, never mutated in place.
//
// Authorized holds exactly when at least one line was evaluated and none
// failed its tier rule.
type Summary struct {
	Tier         Tier            `json:"tier"`
	TotalBoxes   int64           `json:"total_boxes"`
	TotalPieces  decimal.Decimal `json:"total_pieces"`
	TotalPacks   int64           `json:"total_packs"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Authorized   bool            `json:"authorized"`
	FailureCount int             `json:"failure_count"`
	Lines        []Line          `json:"lines"`
}

// ComputeSummary prices and checks a quantity selection under a tier.
//
// The function is pure and deterministic: identical inputs produce identical
// summaries, and lines are emitted in sorted code order. Quantities at or
// below zero and codes absent from the catalog are skipped, not errors -
// unknown codes are a UI concern, not an engine one.
//
// A tier switch while quantities exist is handled for free: callers always
// recompute the whole summary, so every line is re-priced and re-checked
// under the new tier's column and rule. No partial application is possible.
func ComputeSummary(tier Tier, quantities map[string]int64, cat *catalog.Catalog) Summary {
	s := Summary{Tier: tier, TotalPieces: decimal.Zero, TotalValue: decimal.Zero}
	rule, ok := tierRules[tier]
	if !ok {
		// No tier selected: nothing is evaluated, nothing is authorized.
		return s
	}

	codes := make([]string, 0, len(quantities))
	for code := range quantities {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		qty := quantities[code]
		if qty <= 0 {
			continue
		}
		it, found := cat.Lookup(code)
		if !found {
			continue
		}

		line := computeLine(rule, it, qty)
		if !line.Compliant {
			s.FailureCount++
		}

		s.TotalBoxes += line.QuantityBoxes
		s.TotalPieces = s.TotalPieces.Add(line.Pieces)
		s.TotalPacks += line.Packs
		s.TotalValue = s.TotalValue.Add(line.LineValue)
		s.Lines = append(s.Lines, line)
	}

	s.Authorized = len(s.Lines) > 0 && s.FailureCount == 0
	return s
}

func computeLine(rule tierRule, it catalog.Item, qty int64) Line {
	qtyDec := decimal.NewFromInt(qty)
	rate := rule.unitPrice(it)
	lineValue := qtyDec.Mul(it.BoxMeterage).Mul(rate)
	pieces := it.BoxMeterage.Div(metersPerPiece).Mul(qtyDec)

	line := Line{
		Code:          it.Code,
		Name:          it.Name,
		QuantityBoxes: qty,
		RatePerMeter:  rate,
		LineValue:     lineValue,
		Pieces:        pieces,
		Packs:         it.UnitsPerPack * qty,
		Compliant:     rule.compliant(qty, lineValue),
	}
	if line.Compliant {
		line.Status = StatusVerified
	} else {
		line.Status = StatusInefficient
	}
	return line
}
