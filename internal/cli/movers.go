package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haulstone/tierline/internal/ledger"
)

// MoversOptions holds flags for the movers command.
type MoversOptions struct {
	*RootOptions
	Top int
}

// NewMoversCommand creates the movers command.
func NewMoversCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MoversOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "movers",
		Short: "Show per-SKU velocity analytics derived from the ledger",
		Long: `Show per-SKU velocity analytics derived from the ledger.

Stats are recomputed from the full ledger on every run: order frequency,
total box volume, total valuation and its share of all spend. SKUs whose
box volume reaches 70% of the highest-volume SKU are marked FAST.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMovers(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Top, "top", 10, "number of SKUs to show")

	return cmd
}

func runMovers(opts *MoversOptions, cmd *cobra.Command) error {
	ws, err := openWorkspace(opts.RootOptions, false)
	if err != nil {
		return err
	}
	defer ws.close()

	records, err := ws.loadRecords(cmd.Context())
	if err != nil {
		return err
	}

	stats := ledger.Velocity(records)
	top := ledger.TopN(stats, opts.Top)
	threshold := ledger.FastMoverThreshold(stats)
	totalSpent := ledger.TotalSpent(records)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		type mover struct {
			ledger.Stat
			FastMover    bool   `json:"fast_mover"`
			Contribution string `json:"contribution_percent"`
		}
		movers := make([]mover, 0, len(top))
		for _, st := range top {
			movers = append(movers, mover{
				Stat:         st,
				FastMover:    st.FastMover(threshold),
				Contribution: ledger.ContributionPercent(st, totalSpent).StringFixed(2),
			})
		}
		return formatter.Success(movers)
	}

	if len(top) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No purchase history yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tORDERS\tBOXES\tVALUATION\tSHARE\t")
	for _, st := range top {
		marker := ""
		if st.FastMover(threshold) {
			marker = "FAST"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s%%\t%s\n",
			st.Code, st.Appearances, st.TotalBoxes,
			st.TotalValuation.StringFixed(2),
			ledger.ContributionPercent(st, totalSpent).StringFixed(1),
			marker)
	}
	return tw.Flush()
}
