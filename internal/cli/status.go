package cli

import (
	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Show the current draft's order summary",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, cmd)
		},
	}

	return cmd
}

func runStatus(opts *RootOptions, cmd *cobra.Command) error {
	ws, err := openWorkspace(opts, true)
	if err != nil {
		return err
	}
	defer ws.close()

	draft, err := ws.loadDraft(cmd.Context())
	if err != nil {
		return err
	}

	summary := ws.summarize(draft)
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(summary)
	}
	renderSummary(cmd.OutOrStdout(), summary)
	return nil
}
