package cli

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

// renderSummary writes the human-readable order summary.
func renderSummary(w io.Writer, s engine.Summary) {
	if !s.Tier.Selected() {
		fmt.Fprintln(w, "No tier selected. Choose one with: tierline tier <tier>")
		return
	}

	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "Tier: %s\n", s.Tier)

	if len(s.Lines) == 0 {
		fmt.Fprintln(w, "No lines. Add quantities with: tierline set <code> <boxes>")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tBOXES\tPIECES\tPACKS\tVALUE\tSTATUS")
	for _, line := range s.Lines {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\t%s\n",
			line.Code, line.QuantityBoxes, line.Pieces.String(), line.Packs,
			formatMoney(p, line.LineValue), line.Status)
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t%s\t%d\t%s\t\n",
		s.TotalBoxes, s.TotalPieces.String(), s.TotalPacks, formatMoney(p, s.TotalValue))
	tw.Flush()

	if s.Authorized {
		fmt.Fprintln(w, "Order AUTHORIZED for commit.")
	} else {
		fmt.Fprintf(w, "Order BLOCKED: %d line(s) below tier minimum.\n", s.FailureCount)
	}
}

// formatMoney renders a decimal with thousands grouping and two fraction
// digits. Display only - stored values never pass through float64.
func formatMoney(p *message.Printer, d decimal.Decimal) string {
	f, _ := d.Float64()
	return p.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
