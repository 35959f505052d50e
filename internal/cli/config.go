package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/gwal/internal/config"
)

// newConfigCmd prints the effective settings.
func newConfigCmd(globals *globalFlags) *cobra.Command {
	var (
		overrides   config.Overrides
		showPaths   bool
		showDefault bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the settings gwal would use as TOML.

The config file is read and any override flags are applied on top, so the
output can be used as a starting config file.

Examples:
  # Write a config file with the current settings
  gwal config > ~/.config/gwal/config.toml

  # Show where gwal reads and writes files
  gwal config --paths`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := globals.env(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if showPaths {
				return writeLines(out, []string{
					fmt.Sprintf("config:  %s", e.paths.ConfigFile),
					fmt.Sprintf("cache:   %s", e.paths.SchemesDir),
					fmt.Sprintf("current: %s", e.paths.CurrentFile),
					fmt.Sprintf("preview: %s", e.paths.PreviewFile),
				})
			}

			if showDefault {
				return config.Default().Encode(out)
			}
			return e.settings(&overrides).Encode(out)
		},
	}

	cmd.Flags().BoolVar(&showPaths, "paths", false, "print file locations instead of settings")
	cmd.Flags().BoolVar(&showDefault, "default", false, "print the built-in defaults")
	overrides.RegisterFlags(cmd.Flags())

	return cmd
}
