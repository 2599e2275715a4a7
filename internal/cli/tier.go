package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haulstone/tierline/internal/engine"
)

// NewTierCommand creates the tier command.
func NewTierCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tier <factory-bulk|trade-wholesale|standard-retail|none>",
		Short: "Select the purchasing tier for the current draft",
		Long: `Select the purchasing tier for the current draft.

Switching tier re-prices and re-checks every line under the new tier's
price column and minimum rule - a tier switch never partially applies.

Example:
  tierline tier factory-bulk
  tierline tier none`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTier(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTier(opts *RootOptions, arg string, cmd *cobra.Command) error {
	tierArg := arg
	if tierArg == "none" {
		tierArg = ""
	}
	tier, err := engine.ParseTier(tierArg)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid tier", err)
	}

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

	draft.Tier = tier
	if err := ws.store.SaveDraft(ctx, draft); err != nil {
		return WrapExitError(ExitCommandError, "failed to save draft", err)
	}

	summary := ws.summarize(draft)
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(summary)
	}

	if !tier.Selected() {
		fmt.Fprintln(cmd.OutOrStdout(), "Tier cleared.")
		return nil
	}
	renderSummary(cmd.OutOrStdout(), summary)
	return nil
}
