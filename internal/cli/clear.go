package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "clear",
		Short:         "Discard the current draft",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(rootOpts, cmd)
		},
	}

	return cmd
}

func runClear(opts *RootOptions, cmd *cobra.Command) error {
	ws, err := openWorkspace(opts, false)
	if err != nil {
		return err
	}
	defer ws.close()

	if err := ws.store.ClearDraft(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "failed to clear draft", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(map[string]bool{"cleared": true})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared.")
	return nil
}
