package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/gwal/internal/cache"
)

// newShowCmd prints the current colorscheme without regenerating it.
func newShowCmd(globals *globalFlags) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current colorscheme",
		Long: `Print the most recently published colorscheme.

By default the 16 colours are printed as #rrggbb lines. With --preview the
colours are rendered as swatches when writing to a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := globals.env(cmd)
			if err != nil {
				return err
			}

			publisher := cache.NewPublisher(e.paths.CurrentFile, e.paths.PreviewFile)
			cs, err := publisher.ReadCurrent()
			if err != nil {
				return err
			}

			if preview {
				return writePreview(cmd.OutOrStdout(), cs)
			}
			return writeLines(cmd.OutOrStdout(), cs.Hex())
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "render colour swatches")

	return cmd
}
