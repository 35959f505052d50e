package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/gwal/internal/colour"
)

// Publisher writes the externally consumed "current colorscheme" file and
// the HTML preview.
type Publisher struct {
	currentFile string
	previewFile string
}

// NewPublisher creates a Publisher for the given file paths. An empty
// previewFile disables the preview.
func NewPublisher(currentFile, previewFile string) *Publisher {
	return &Publisher{currentFile: currentFile, previewFile: previewFile}
}

// CurrentFile returns the path of the current colorscheme file.
func (p *Publisher) CurrentFile() string {
	return p.currentFile
}

// PublishCurrent replaces the current colorscheme file.
func (p *Publisher) PublishCurrent(cs colour.Colorscheme) error {
	if err := os.MkdirAll(filepath.Dir(p.currentFile), 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return writeScheme(p.currentFile, cs)
}

// PublishPreview replaces the HTML preview file.
func (p *Publisher) PublishPreview(cs colour.Colorscheme) error {
	if p.previewFile == "" {
		return nil
	}

	html, err := cs.HTMLPreview()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.previewFile), 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(p.previewFile, html, 0o644); err != nil { // #nosec G306 - Preview is opened in a browser
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

// ReadCurrent loads the current colorscheme file.
func (p *Publisher) ReadCurrent() (colour.Colorscheme, error) {
	data, err := os.ReadFile(p.currentFile)
	if err != nil {
		return colour.Colorscheme{}, fmt.Errorf("failed to read current colorscheme: %w", err)
	}
	var cs colour.Colorscheme
	if err := cs.UnmarshalText(data); err != nil {
		return colour.Colorscheme{}, err
	}
	return cs, nil
}
