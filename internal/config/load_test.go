package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/gwal/internal/colour"
)

func TestParsePartial(t *testing.T) {
	input := `
backend = "colorthief"
thumb_w = 64
bg_color = "#102030"
light = true
skip_value = true
skip_value_min = 0.2
`
	got, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := Default()
	want.Backend = colour.BackendThief
	want.ThumbW = 64
	want.BgColor = colour.RGB{R: 0x10, G: 0x20, B: 0x30}
	want.Light = true
	want.SkipValue = true
	want.SkipValueMin = 0.2

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":    `colour_count = 16`,
		"bad colour":     `fg_color = "white"`,
		"bad backend":    `backend = "haishoku"`,
		"invalid range":  "clamp_value_min = 0.9\nclamp_value_max = 0.1",
		"wrong type":     `thumb_w = "big"`,
		"malformed toml": `thumb_w = `,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(input)); !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalid", input, err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	s := Default()
	s.Backend = colour.BackendThief
	s.FgColor = colour.RGB{R: 0xee, G: 0xdd, B: 0xcc}
	s.Light = true

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), `fg_color = '#eeddcc'`) && !strings.Contains(buf.String(), `fg_color = "#eeddcc"`) {
		t.Errorf("encoded config missing fg_color:\n%s", buf.String())
	}

	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("thumb_h = 10\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.ThumbH != 10 || got.ThumbW != Default().ThumbW {
		t.Errorf("Load() thumb = %dx%d, want %dx10", got.ThumbW, got.ThumbH, Default().ThumbW)
	}
}

func TestPathsFor(t *testing.T) {
	p := PathsFor("/cfg", "/cache")
	want := Paths{
		ConfigFile:  filepath.Join("/cfg", "config.toml"),
		CacheDir:    "/cache",
		SchemesDir:  filepath.Join("/cache", "schemes"),
		CurrentFile: filepath.Join("/cache", "colors"),
		PreviewFile: filepath.Join("/cache", "preview.html"),
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("PathsFor() mismatch (-want +got):\n%s", diff)
	}
}
