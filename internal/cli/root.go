// Package cli provides the command-line interface for gwal.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/gwal/internal/cache"
	"github.com/jmylchreest/gwal/internal/config"
	"github.com/jmylchreest/gwal/internal/pipeline"
	"github.com/jmylchreest/gwal/internal/version"
)

// globalFlags are shared by every command.
type globalFlags struct {
	verbose    bool
	quiet      bool
	configFile string
	cacheDir   string
}

// env is the per-invocation state built from the global flags.
type env struct {
	logger hclog.Logger
	paths  config.Paths
}

// NewRootCmd builds the command tree. Running the root command with -i
// generates a colorscheme.
func NewRootCmd() *cobra.Command {
	globals := &globalFlags{}
	gen := &generateFlags{}

	rootCmd := &cobra.Command{
		Use:   "gwal",
		Short: "Generate a 16-colour terminal colorscheme from an image",
		Long: `gwal derives a 16-colour terminal colorscheme from an image.

It samples a thumbnail of the image, filters and clamps the samples in HSV,
reduces them to an 8-colour palette, orders the palette by hue and blends the
background, foreground and light variants from it. Results are cached per
settings and image name.

The current colorscheme is written as 16 #rrggbb lines to the cache directory
(see 'gwal config --paths').

Examples:
  # Generate from an image
  gwal -i wallpaper.jpg

  # Pick a random image from a directory tree, light variant
  gwal -i ~/Pictures/walls -l

  # Use the median cut backend and show the result
  gwal -i wallpaper.png --backend thief --preview

  # Regenerate ignoring the cache
  gwal -i wallpaper.png -c`,
		Version:      version.Short(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := globals.env(cmd)
			if err != nil {
				e.logger.Error("failed to resolve file locations", "error", err)
				return nil
			}
			return runGenerate(cmd, e, gen)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&globals.verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&globals.quiet, "quiet", "q", false, "disable logging")
	rootCmd.PersistentFlags().StringVar(&globals.configFile, "config", "", "config file (default: <user config dir>/gwal/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globals.cacheDir, "cache-dir", "", "cache directory (default: <user cache dir>/gwal)")

	gen.register(rootCmd)

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(globals))
	rootCmd.AddCommand(newShowCmd(globals))
	rootCmd.AddCommand(newWatchCmd(globals))

	return rootCmd
}

// env builds the logger and resolves file locations. The logger is usable
// even when an error is returned.
func (g *globalFlags) env(cmd *cobra.Command) (*env, error) {
	level := hclog.Info
	switch {
	case g.verbose:
		level = hclog.Trace
	case g.quiet:
		level = hclog.Off
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "gwal",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})

	paths, err := config.ResolvePaths()
	if err != nil && (g.configFile == "" || g.cacheDir == "") {
		return &env{logger: logger}, err
	}
	if g.cacheDir != "" || g.configFile != "" {
		configDir := filepath.Dir(paths.ConfigFile)
		cacheDir := paths.CacheDir
		if g.cacheDir != "" {
			cacheDir = g.cacheDir
		}
		paths = config.PathsFor(configDir, cacheDir)
		if g.configFile != "" {
			paths.ConfigFile = g.configFile
		}
	}

	return &env{logger: logger, paths: paths}, nil
}

// settings loads the config file and applies command-line overrides. Any
// failure is logged and the built-in defaults are used instead.
func (e *env) settings(overrides *config.Overrides) config.Settings {
	e.logger.Debug("reading config", "path", e.paths.ConfigFile)

	base, err := config.Load(e.paths.ConfigFile)
	switch {
	case err == nil:
		e.logger.Debug("config collected")
	case errors.Is(err, fs.ErrNotExist):
		e.logger.Debug("no config file, using defaults")
		base = config.Default()
	default:
		e.logger.Error("failed to read config", "error", err)
		e.logger.Warn("using default config")
		base = config.Default()
	}

	merged, err := overrides.Apply(base)
	if err != nil {
		e.logger.Error("invalid flags", "error", err)
		e.logger.Warn("using default config")
		return config.Default()
	}
	return merged
}

func (e *env) pipeline() *pipeline.Pipeline {
	return pipeline.New(
		cache.NewStore(e.paths.SchemesDir),
		cache.NewPublisher(e.paths.CurrentFile, e.paths.PreviewFile),
		pipeline.WithLogger(e.logger),
	)
}

// newVersionCmd represents the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// writeLines writes each string on its own line.
func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
