package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/gwal/internal/colour"
	"github.com/jmylchreest/gwal/internal/config"
	"github.com/jmylchreest/gwal/internal/image"
	"github.com/jmylchreest/gwal/internal/pipeline"
)

// generateFlags are the flags shared by the root and watch commands.
type generateFlags struct {
	overrides config.Overrides
	imagePath string
	skipCache bool
	preview   bool
	print     bool
}

func (g *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&g.imagePath, "image", "i", "", "image or directory of images to generate the colorscheme from")
	cmd.Flags().BoolVarP(&g.skipCache, "skip-cache", "c", false, "skip cache")
	cmd.Flags().BoolVar(&g.preview, "preview", false, "show the colorscheme in the terminal")
	cmd.Flags().BoolVar(&g.print, "print", false, "print the colorscheme as hex colours")
	g.overrides.RegisterFlags(cmd.Flags())
}

// runGenerate resolves the image, runs the pipeline and reports the result.
// Failures are logged rather than returned so the process exits cleanly.
func runGenerate(cmd *cobra.Command, e *env, g *generateFlags) error {
	settings := e.settings(&g.overrides)

	path, err := image.ResolveImagePath(g.imagePath)
	if err != nil {
		if errors.Is(err, image.ErrNoImages) {
			e.logger.Info(err.Error())
		} else {
			e.logger.Error("failed to resolve image", "error", err)
		}
		e.logger.Info("exiting")
		return nil
	}
	if path != g.imagePath {
		e.logger.Info("chosen image", "path", path)
	}

	result, err := e.pipeline().Run(cmd.Context(), path, settings, pipeline.Options{SkipCache: g.skipCache})
	if err != nil {
		e.logger.Error("failed to get colorscheme", "error", err)
		return nil
	}

	return g.report(cmd.OutOrStdout(), result.Scheme)
}

// report prints the scheme when --print or --preview was requested.
func (g *generateFlags) report(w io.Writer, cs colour.Colorscheme) error {
	if g.print {
		if err := writeLines(w, cs.Hex()); err != nil {
			return err
		}
	}
	if g.preview {
		return writePreview(w, cs)
	}
	return nil
}

// writePreview prints ANSI swatches when w is a terminal and a labelled hex
// list otherwise.
func writePreview(w io.Writer, cs colour.Colorscheme) error {
	if isTerminal(w) {
		_, err := io.WriteString(w, cs.ANSIPreview())
		return err
	}

	lines := make([]string, 0, colour.SchemeSize)
	for slot, c := range cs {
		lines = append(lines, fmt.Sprintf("t%-2d %s", slot, c.Hex()))
	}
	return writeLines(w, lines)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
