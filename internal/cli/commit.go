package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/haulstone/tierline/internal/ledger"
)

// NewCommitCommand creates the commit command.
func NewCommitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit the draft to the transaction ledger",
		Long: `Commit the draft to the transaction ledger.

The authorization gate is re-checked at the moment of commit: every line
must meet its tier minimum. A blocked commit reports each failing line
and leaves both the ledger and the draft untouched. On success the order
is appended to the ledger and the draft is cleared.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(rootOpts, cmd)
		},
	}

	return cmd
}

func runCommit(opts *RootOptions, cmd *cobra.Command) error {
	ws, err := openWorkspace(opts, true)
	if err != nil {
		return err
	}
	defer ws.close()

	ctx := cmd.Context()
	draft, err := ws.loadDraft(ctx)
	if err != nil {
		return err
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	records, err := ws.loadRecords(ctx)
	if err != nil {
		return err
	}
	led := ledger.FromRecords(records)

	summary := ws.summarize(draft)
	rec, err := led.Append(summary)
	if err != nil {
		var ge *ledger.GateError
		if errors.As(err, &ge) {
			formatter.Error("BLOCKED", ge.Error(), ge.Failures)
			return NewExitError(ExitFailure, "commit blocked")
		}
		return WrapExitError(ExitCommandError, "commit failed", err)
	}

	if err := ws.store.AppendRecord(ctx, rec); err != nil {
		return WrapExitError(ExitCommandError, "failed to persist order", err)
	}
	if err := ws.store.ClearDraft(ctx); err != nil {
		// The order is already durable; a lingering draft is only noise.
		slog.Warn("order committed but draft not cleared", "error", err)
	}

	slog.Info("order committed", "id", rec.ID, "tier", rec.Tier, "lines", len(rec.Lines), "total", rec.TotalValue)

	if opts.Format == "json" {
		return formatter.Success(rec)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Committed order %s: %d line(s), total %s.\n",
		rec.ID, len(rec.Lines), rec.TotalValue.StringFixed(2))
	return nil
}
