package cli

import (
	"github.com/spf13/cobra"

	"github.com/haulstone/tierline/internal/export"
)

// NewManifestCommand creates the manifest command.
func NewManifestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "manifest",
		Short:         "Print the draft as manifest rows for the exporter",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManifest(rootOpts, cmd)
		},
	}

	return cmd
}

func runManifest(opts *RootOptions, cmd *cobra.Command) error {
	ws, err := openWorkspace(opts, true)
	if err != nil {
		return err
	}
	defer ws.close()

	draft, err := ws.loadDraft(cmd.Context())
	if err != nil {
		return err
	}

	rows := export.Manifest(ws.summarize(draft))

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(rows)
	}
	return export.Render(cmd.OutOrStdout(), rows)
}
