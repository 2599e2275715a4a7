package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List committed orders, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd)
		},
	}

	return cmd
}

func runHistory(opts *RootOptions, cmd *cobra.Command) error {
	ws, err := openWorkspace(opts, false)
	if err != nil {
		return err
	}
	defer ws.close()

	records, err := ws.loadRecords(cmd.Context())
	if err != nil {
		return err
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No committed orders.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMMITTED\tTIER\tLINES\tTOTAL")
	for _, rec := range records {
		committed := time.UnixMilli(rec.CommittedAt).UTC().Format(time.RFC3339)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			rec.ID, committed, rec.Tier, len(rec.Lines), rec.TotalValue.StringFixed(2))
	}
	return tw.Flush()
}
