// Package export maps a verified order summary to the row format consumed
// by the external manifest collaborator. No business rules live here: every
// field is already present on the summary's lines.
package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/haulstone/tierline/internal/engine"
)

// TotalDescription labels the trailing total row.
const TotalDescription = "ORDER TOTAL"

// Row is one manifest line. The final row of a manifest is the order total:
// its Code is empty and its Description is TotalDescription.
type Row struct {
	Code         string          `json:"code,omitempty"`
	Description  string          `json:"description"`
	Boxes        int64           `json:"boxes"`
	Pieces       decimal.Decimal `json:"pieces"`
	Packs        int64           `json:"packs"`
	RatePerMeter decimal.Decimal `json:"rate_per_meter"`
	LineValue    decimal.Decimal `json:"line_value"`
}

// Manifest converts a summary's lines into manifest rows plus the trailing
// total row. An empty summary yields just the (zero) total row.
func Manifest(s engine.Summary) []Row {
	rows := make([]Row, 0, len(s.Lines)+1)
	for _, line := range s.Lines {
		desc := line.Name
		if desc == "" {
			desc = line.Code
		}
		rows = append(rows, Row{
			Code:         line.Code,
			Description:  desc,
			Boxes:        line.QuantityBoxes,
			Pieces:       line.Pieces,
			Packs:        line.Packs,
			RatePerMeter: line.RatePerMeter,
			LineValue:    line.LineValue,
		})
	}
	rows = append(rows, Row{
		Description:  TotalDescription,
		Boxes:        s.TotalBoxes,
		Pieces:       s.TotalPieces,
		Packs:        s.TotalPacks,
		RatePerMeter: decimal.Zero,
		LineValue:    s.TotalValue,
	})
	return rows
}

// Render writes rows as an aligned text table with grouped currency values.
func Render(w io.Writer, rows []Row) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "CODE\tDESCRIPTION\tBOXES\tPIECES\tPACKS\tRATE/M\tVALUE")
	for _, r := range rows {
		rate := ""
		if r.RatePerMeter.IsPositive() {
			rate = money(p, r.RatePerMeter)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\t%s\n",
			r.Code, r.Description, r.Boxes, r.Pieces.String(), r.Packs, rate, money(p, r.LineValue))
	}

	return tw.Flush()
}

// money formats a decimal with thousands grouping and two fraction digits.
// Display only - persisted values never pass through float64.
func money(p *message.Printer, d decimal.Decimal) string {
	f, _ := d.Float64()
	return p.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
