package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haulstone/tierline/internal/engine"
	"github.com/haulstone/tierline/internal/ledger"
)

// ProjectOptions holds flags for the project command.
type ProjectOptions struct {
	*RootOptions
	Category string
}

// NewProjectCommand creates the project command.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProjectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Fill the draft with minimum compliant quantities from purchase history",
		Long: `Fill the draft with minimum compliant quantities from purchase history.

For every SKU that appears in the ledger (optionally restricted to one
category), the smallest quantity satisfying the tier's minimum rule is
written into the draft. Manual quantities for SKUs without history are
left untouched; SKUs with history are overwritten.

Example:
  tierline project
  tierline project --category plank`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "restrict projection to one catalog category")

	return cmd
}

func runProject(opts *ProjectOptions, cmd *cobra.Command) error {
	ws, err := openWorkspace(opts.RootOptions, true)
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

	targets, err := engine.ProjectQuantities(draft.Tier, ws.catalog, led.PurchasedCodes(), engine.Scope{Category: opts.Category})
	switch {
	case errors.Is(err, engine.ErrTierRequired):
		formatter.Error("TIER_REQUIRED", err.Error(), nil)
		return NewExitError(ExitFailure, "projection blocked: no tier selected")
	case errors.Is(err, engine.ErrNoMovers):
		formatter.Error("NO_MOVERS", err.Error(), map[string]string{"category": opts.Category})
		return NewExitError(ExitFailure, "no movers found")
	case err != nil:
		return WrapExitError(ExitCommandError, "projection failed", err)
	}

	draft.Apply(targets)
	if err := ws.store.SaveDraft(ctx, draft); err != nil {
		return WrapExitError(ExitCommandError, "failed to save draft", err)
	}

	summary := ws.summarize(draft)
	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"projected": targets,
			"summary":   summary,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Projected %d SKU(s) from purchase history.\n", len(targets))
	renderSummary(cmd.OutOrStdout(), summary)
	return nil
}
