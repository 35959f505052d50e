package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppSlug names the per-user config and cache directories.
const AppSlug = "gwal"

// Paths are the fixed file locations used by one process. They are resolved
// once at startup and passed to the components that need them.
type Paths struct {
	ConfigFile  string
	CacheDir    string
	SchemesDir  string
	CurrentFile string
	PreviewFile string
}

// ResolvePaths computes the default locations under the user's config and
// cache directories. Nothing is created on disk.
func ResolvePaths() (Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("resolve user config dir: %w", err)
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return Paths{}, fmt.Errorf("resolve user cache dir: %w", err)
		}
		cacheDir = filepath.Join(home, ".cache")
	}

	return PathsFor(filepath.Join(configDir, AppSlug), filepath.Join(cacheDir, AppSlug)), nil
}

// PathsFor lays out the standard file names under explicit config and cache
// directories.
func PathsFor(configDir, cacheDir string) Paths {
	return Paths{
		ConfigFile:  filepath.Join(configDir, "config.toml"),
		CacheDir:    cacheDir,
		SchemesDir:  filepath.Join(cacheDir, "schemes"),
		CurrentFile: filepath.Join(cacheDir, "colors"),
		PreviewFile: filepath.Join(cacheDir, "preview.html"),
	}
}
