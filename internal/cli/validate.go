package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haulstone/tierline/internal/catalog"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Validate a catalog file against the schema",
		Long: `Validate a catalog file against the schema.

Checks that every item has a non-empty code, positive meterage, pack
count and prices, and that no code is duplicated.

Example:
  tierline validate ./catalog.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	cat, err := catalog.Load(path)
	if err != nil {
		formatter.Error("INVALID_CATALOG", err.Error(), nil)
		return NewExitError(ExitFailure, "catalog validation failed")
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{"valid": true, "items": cat.Len()})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Catalog OK: %d item(s).\n", cat.Len())
	return nil
}
