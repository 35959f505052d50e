package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces bursts of file events into one regeneration.
const watchDebounce = 250 * time.Millisecond

// newWatchCmd regenerates the colorscheme whenever the image or config changes.
func newWatchCmd(globals *globalFlags) *cobra.Command {
	gen := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the colorscheme when the image or config changes",
		Long: `Generate a colorscheme and keep regenerating it whenever the image, any
image in the directory tree, or the config file changes. Runs until
interrupted.

Examples:
  gwal watch -i ~/Pictures/wallpaper.png
  gwal watch -i ~/Pictures/walls --skip-cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := globals.env(cmd)
			if err != nil {
				e.logger.Error("failed to resolve file locations", "error", err)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			w, err := newWatcher(e.logger, gen.imagePath, e.paths.ConfigFile)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := runGenerate(cmd, e, gen); err != nil {
				return err
			}
			e.logger.Info("watching for changes", "image", gen.imagePath, "config", e.paths.ConfigFile)

			return w.Run(ctx, watchDebounce, func() {
				if err := runGenerate(cmd, e, gen); err != nil {
					e.logger.Error("failed to regenerate", "error", err)
				}
			})
		},
	}

	gen.register(cmd)
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

// watcher reports changes to an image (or a directory tree of images) and a
// config file.
type watcher struct {
	fsw      *fsnotify.Watcher
	logger   hclog.Logger
	imageDir string
	files    map[string]struct{}
}

func newWatcher(logger hclog.Logger, imagePath, configFile string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{fsw: fsw, logger: logger, files: make(map[string]struct{})}

	if err := w.addImage(imagePath); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if configFile != "" {
		w.addFile(configFile)
	}
	return w, nil
}

func (w *watcher) addImage(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		w.addFile(path)
		return nil
	}

	w.imageDir = filepath.Clean(path)
	return w.addTree(w.imageDir)
}

// addTree watches root and every directory below it.
func (w *watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		w.logger.Trace("watching directory", "path", path)
		return nil
	})
}

// addFile watches the parent directory so that editors replacing the file
// are still noticed. A missing directory is logged and skipped.
func (w *watcher) addFile(path string) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Debug("not watching", "path", path, "error", err)
		return
	}
	w.files[path] = struct{}{}
}

// relevant reports whether ev concerns a watched file or the image tree.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	if _, ok := w.files[name]; ok {
		return true
	}
	return w.imageDir != "" && (name == w.imageDir || isWithin(w.imageDir, name))
}

// Run calls fn once per burst of relevant events until ctx is done. fn
// always runs on the calling goroutine.
func (w *watcher) Run(ctx context.Context, delay time.Duration, fn func()) error {
	debounced := debounce.New(delay)
	trigger := make(chan struct{}, 1)
	fire := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			if ev.Has(fsnotify.Create) && w.imageDir != "" {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", ev.Name, "error", err)
					}
				}
			}
			debounced(fire)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				debounced(fire)
			}
			w.logger.Warn("watch error", "error", err)
		case <-trigger:
			fn()
		}
	}
}

// Close stops watching.
func (w *watcher) Close() error {
	return w.fsw.Close()
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
