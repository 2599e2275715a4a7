package cli

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <code> <boxes>",
		Short: "Set the box quantity for a SKU in the draft",
		Long: `Set the box quantity for a SKU in the draft.

Negative quantities are normalized to zero; a zero quantity removes the
line. The updated summary is recomputed and printed.

Example:
  tierline set OAK-90 32
  tierline set OAK-90 0`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runSet(opts *RootOptions, code, qtyArg string, cmd *cobra.Command) error {
	qty, err := strconv.ParseInt(qtyArg, 10, 64)
	if err != nil {
		return WrapExitError(ExitCommandError, "quantity must be an integer", err)
	}
	if qty < 0 {
		slog.Debug("negative quantity normalized to zero", "code", code, "quantity", qty)
		qty = 0
	}

	ws, err := openWorkspace(opts, true)
	if err != nil {
		return err
	}
	defer ws.close()

	if _, found := ws.catalog.Lookup(code); !found {
		// Unknown codes are dropped by the engine; warn so the typo is visible.
		slog.Warn("code not in catalog, line will not be priced", "code", code)
	}

	ctx := cmd.Context()
	draft, err := ws.loadDraft(ctx)
	if err != nil {
		return err
	}

	draft.Set(code, qty)
	if err := ws.store.SaveDraft(ctx, draft); err != nil {
		return WrapExitError(ExitCommandError, "failed to save draft", err)
	}

	summary := ws.summarize(draft)
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(summary)
	}
	renderSummary(cmd.OutOrStdout(), summary)
	return nil
}
