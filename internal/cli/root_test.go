// Package cli_test provides tests for the CLI package.
package cli_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/gwal/internal/cli"
	"github.com/jmylchreest/gwal/internal/config"
)

type testEnv struct {
	configFile string
	cacheDir   string
	imagePath  string
}

// setupTests writes a solid red image and a config file that keeps
// saturated samples, and returns the locations to pass on the command line.
func setupTests(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	imagePath := filepath.Join(dir, "walls", "red.png")
	if err := os.MkdirAll(filepath.Dir(imagePath), 0o755); err != nil {
		t.Fatalf("Failed to create image dir: %v", err)
	}
	f, err := os.Create(imagePath)
	if err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode image: %v", err)
	}
	f.Close()

	configFile := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configFile, []byte("skip_saturation = false\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	return testEnv{
		configFile: configFile,
		cacheDir:   filepath.Join(dir, "cache"),
		imagePath:  imagePath,
	}
}

func (e testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(append(args, "--config", e.configFile, "--cache-dir", e.cacheDir))
	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func (e testEnv) paths() config.Paths {
	return config.PathsFor(filepath.Dir(e.configFile), e.cacheDir)
}

func TestGenerate(t *testing.T) {
	env := setupTests(t)

	out, stderr, err := env.run(t, "-i", env.imagePath, "--print")
	if err != nil {
		t.Fatalf("Execute failed: %v\n%s", err, stderr)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 16 {
		t.Fatalf("--print wrote %d lines, want 16:\n%s", len(lines), out)
	}

	data, err := os.ReadFile(env.paths().CurrentFile)
	if err != nil {
		t.Fatalf("current colorscheme not written: %v", err)
	}
	if string(data) != strings.Join(lines, "\n") {
		t.Errorf("current file does not match printed scheme:\n%s\nvs\n%s", data, out)
	}

	entries, err := os.ReadDir(env.paths().SchemesDir)
	if err != nil || len(entries) != 1 {
		t.Errorf("expected one cache entry, got %d (%v)", len(entries), err)
	}
}

func TestGenerateFromDirectory(t *testing.T) {
	env := setupTests(t)

	_, stderr, err := env.run(t, "-i", filepath.Dir(env.imagePath), "-c")
	if err != nil {
		t.Fatalf("Execute failed: %v\n%s", err, stderr)
	}
	if _, err := os.Stat(env.paths().CurrentFile); err != nil {
		t.Errorf("current colorscheme not written: %v", err)
	}
	if _, err := os.Stat(env.paths().SchemesDir); !os.IsNotExist(err) {
		t.Error("cache written despite -c")
	}
}

func TestGenerateFailuresExitCleanly(t *testing.T) {
	env := setupTests(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no image", args: nil},
		{name: "missing image", args: []string{"-i", filepath.Join(env.cacheDir, "nope.png")}},
		{name: "filtered out", args: []string{"-i", env.imagePath, "--skip-value", "--skip-v-min", "0.99", "--skip-v-max", "1"}},
		{name: "thief palette too small", args: []string{"-i", env.imagePath, "--backend", "thief"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run(t, tt.args...)
			if err != nil {
				t.Errorf("Execute() = %v, want nil", err)
			}
			if _, err := os.Stat(env.paths().CurrentFile); !os.IsNotExist(err) {
				t.Error("current colorscheme written after a failure")
			}
		})
	}
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	env := setupTests(t)
	if err := os.WriteFile(env.configFile, []byte("not_a_setting = 1\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	// Defaults skip saturated samples, so the red image yields nothing.
	_, stderr, err := env.run(t, "-i", env.imagePath)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(stderr, "using default config") {
		t.Errorf("expected a fallback warning, got:\n%s", stderr)
	}
	if _, err := os.Stat(env.paths().CurrentFile); !os.IsNotExist(err) {
		t.Error("current colorscheme written with filtering defaults")
	}
}

func TestQuietSuppressesLogs(t *testing.T) {
	env := setupTests(t)

	_, stderr, err := env.run(t, "-q")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if stderr != "" {
		t.Errorf("quiet run logged:\n%s", stderr)
	}
}

func TestShow(t *testing.T) {
	env := setupTests(t)

	if _, _, err := env.run(t, "show"); err == nil {
		t.Error("show succeeded before a scheme was generated")
	}

	printed, _, err := env.run(t, "-i", env.imagePath, "--print")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	shown, _, err := env.run(t, "show")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if shown != printed {
		t.Errorf("show output differs from generated scheme:\n%s\nvs\n%s", shown, printed)
	}

	preview, _, err := env.run(t, "show", "--preview")
	if err != nil {
		t.Fatalf("show --preview failed: %v", err)
	}
	if !strings.HasPrefix(preview, "t0 ") || !strings.Contains(preview, "t15 #") {
		t.Errorf("unexpected preview:\n%s", preview)
	}
}

func TestConfigCommand(t *testing.T) {
	env := setupTests(t)

	out, _, err := env.run(t, "config", "--thumb-w", "64")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	s, err := config.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("config output is not valid TOML settings: %v\n%s", err, out)
	}
	if s.ThumbW != 64 || s.SkipSaturation {
		t.Errorf("config did not reflect file and flags: thumb_w %d, skip_saturation %v", s.ThumbW, s.SkipSaturation)
	}

	out, _, err = env.run(t, "config", "--default")
	if err != nil {
		t.Fatalf("config --default failed: %v", err)
	}
	if s, err := config.Parse(strings.NewReader(out)); err != nil || s != config.Default() {
		t.Errorf("config --default did not print the defaults: %v", err)
	}

	out, _, err = env.run(t, "config", "--paths")
	if err != nil {
		t.Fatalf("config --paths failed: %v", err)
	}
	if !strings.Contains(out, env.configFile) || !strings.Contains(out, env.paths().CurrentFile) {
		t.Errorf("config --paths output missing locations:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	env := setupTests(t)

	out, _, err := env.run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "gwal version ") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestUnresolvablePathsExitCleanly(t *testing.T) {
	env := setupTests(t)
	t.Setenv("HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs([]string{"-i", env.imagePath})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() = %v, want nil", err)
	}
	if !strings.Contains(errBuf.String(), "failed to resolve file locations") {
		t.Errorf("expected the failure to be logged, got:\n%s", errBuf.String())
	}
}
