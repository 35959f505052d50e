package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/gwal/internal/colour"
)

// Store keeps one file per fingerprint under a directory. Entries are never
// mutated or evicted; writing an existing key replaces it.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created lazily
// on the first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory holding the entries.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path for a fingerprint.
func (s *Store) Path(fingerprint string) string {
	return filepath.Join(s.dir, fingerprint)
}

// Load returns the scheme stored under fingerprint. The boolean is false
// when there is no entry; an error is returned only for unreadable or
// malformed entries.
func (s *Store) Load(fingerprint string) (colour.Colorscheme, bool, error) {
	data, err := os.ReadFile(s.Path(fingerprint))
	if err != nil {
		if os.IsNotExist(err) {
			return colour.Colorscheme{}, false, nil
		}
		return colour.Colorscheme{}, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var cs colour.Colorscheme
	if err := cs.UnmarshalText(data); err != nil {
		return colour.Colorscheme{}, false, fmt.Errorf("malformed cache entry %s: %w", fingerprint, err)
	}
	return cs, true, nil
}

// Save writes cs under fingerprint.
func (s *Store) Save(fingerprint string, cs colour.Colorscheme) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return writeScheme(s.Path(fingerprint), cs)
}

func writeScheme(path string, cs colour.Colorscheme) error {
	data, err := cs.MarshalText()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Scheme files are read by other tools
		return fmt.Errorf("failed to write colorscheme: %w", err)
	}
	return nil
}
