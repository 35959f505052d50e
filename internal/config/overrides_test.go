package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/gwal/internal/colour"
)

func parseOverrides(t *testing.T, args ...string) *Overrides {
	t.Helper()
	var o Overrides
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
	return &o
}

func TestOverridesUnsetFlagsKeepBase(t *testing.T) {
	base := Default()
	base.ThumbW = 42
	base.Backend = colour.BackendThief
	base.SkipValueMin = 0.25

	got, err := parseOverrides(t).Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if diff := cmp.Diff(base, got); diff != "" {
		t.Errorf("Apply() changed settings (-want +got):\n%s", diff)
	}
}

func TestOverridesApply(t *testing.T) {
	o := parseOverrides(t,
		"--backend", "colorthief",
		"--thumb-w", "0",
		"--thumb-h", "25",
		"--bg", "#112233",
		"--bg-idx", "12",
		"--fg-str", "250",
		"-l",
		"--skip-value",
		"--clamp-v-max", "2.5",
		"--skip-s-min", "0.1",
	)

	got, err := o.Apply(Default())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := Default()
	want.Backend = colour.BackendThief
	want.ThumbW = 1
	want.ThumbH = 25
	want.BgColor = colour.RGB{R: 0x11, G: 0x22, B: 0x33}
	want.BgIdx = 7
	want.FgStrength = 100
	want.Light = true
	want.SkipValue = true
	want.ClampValueMax = 1
	want.SkipSaturationMin = 0.1

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestOverridesBooleansOnlyEnable(t *testing.T) {
	base := Default()
	base.Light = true
	base.SkipValue = true

	got, err := parseOverrides(t).Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !got.Light || !got.SkipValue {
		t.Errorf("config booleans were switched off: %+v", got)
	}
}

func TestOverridesErrors(t *testing.T) {
	tests := map[string][]string{
		"bad backend":  {"--backend", "nope"},
		"bad colour":   {"--fg", "#12345"},
		"inverted min": {"--skip-v-min", "0.95"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parseOverrides(t, args...).Apply(Default()); !errors.Is(err, ErrInvalid) {
				t.Errorf("Apply() error = %v, want ErrInvalid", err)
			}
		})
	}
}
