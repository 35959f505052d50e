// Package config holds the colorscheme settings record, its defaults and
// validation, TOML loading, and the per-user file locations.
package config

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/gwal/internal/colour"
)

// ErrInvalid is returned when settings fail validation.
var ErrInvalid = errors.New("invalid settings")

// Settings is the full set of tunables for one pipeline run. It is validated
// once with Validate and treated as read-only afterwards.
type Settings struct {
	Backend colour.Backend `toml:"backend"`
	ThumbW  int            `toml:"thumb_w"`
	ThumbH  int            `toml:"thumb_h"`

	BgColor    colour.RGB `toml:"bg_color"`
	BgIdx      int        `toml:"bg_idx"`
	BgStrength uint8      `toml:"bg_strength"`

	FgColor    colour.RGB `toml:"fg_color"`
	FgIdx      int        `toml:"fg_idx"`
	FgStrength uint8      `toml:"fg_strength"`

	Light bool `toml:"light"`

	ClampSaturation bool `toml:"clamp_saturation"`
	ClampValue      bool `toml:"clamp_value"`
	SkipSaturation  bool `toml:"skip_saturation"`
	SkipValue       bool `toml:"skip_value"`

	ClampValueMin      float64 `toml:"clamp_value_min"`
	ClampValueMax      float64 `toml:"clamp_value_max"`
	ClampSaturationMin float64 `toml:"clamp_saturation_min"`
	ClampSaturationMax float64 `toml:"clamp_saturation_max"`
	SkipValueMin       float64 `toml:"skip_value_min"`
	SkipValueMax       float64 `toml:"skip_value_max"`
	SkipSaturationMin  float64 `toml:"skip_saturation_min"`
	SkipSaturationMax  float64 `toml:"skip_saturation_max"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Backend:            colour.BackendKMeans,
		ThumbW:             100,
		ThumbH:             100,
		BgColor:            colour.Black,
		BgIdx:              0,
		BgStrength:         10,
		FgColor:            colour.White,
		FgIdx:              0,
		FgStrength:         10,
		Light:              false,
		ClampSaturation:    true,
		ClampValue:         true,
		SkipSaturation:     true,
		SkipValue:          false,
		ClampValueMin:      0.4,
		ClampValueMax:      0.5,
		ClampSaturationMin: 0.4,
		ClampSaturationMax: 0.41,
		SkipValueMin:       0.1,
		SkipValueMax:       0.9,
		SkipSaturationMin:  0.3,
		SkipSaturationMax:  0.7,
	}
}

// Validate checks every range invariant and returns an error wrapping
// ErrInvalid for the first violation found.
func (s Settings) Validate() error {
	if !s.Backend.IsValid() {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, s.Backend)
	}
	if s.ThumbW < 1 {
		return fmt.Errorf("%w: thumb_w must be at least 1", ErrInvalid)
	}
	if s.ThumbH < 1 {
		return fmt.Errorf("%w: thumb_h must be at least 1", ErrInvalid)
	}

	for _, idx := range []struct {
		name  string
		value int
	}{
		{"bg_idx", s.BgIdx},
		{"fg_idx", s.FgIdx},
	} {
		if idx.value < 0 || idx.value >= colour.PaletteSize {
			return fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalid, idx.name, colour.PaletteSize-1)
		}
	}

	if s.BgStrength > 100 {
		return fmt.Errorf("%w: bg_strength must be between 0 and 100", ErrInvalid)
	}
	if s.FgStrength > 100 {
		return fmt.Errorf("%w: fg_strength must be between 0 and 100", ErrInvalid)
	}

	bounds := []struct {
		name     string
		min, max float64
	}{
		{"clamp_value", s.ClampValueMin, s.ClampValueMax},
		{"clamp_saturation", s.ClampSaturationMin, s.ClampSaturationMax},
		{"skip_value", s.SkipValueMin, s.SkipValueMax},
		{"skip_saturation", s.SkipSaturationMin, s.SkipSaturationMax},
	}
	for _, b := range bounds {
		if b.min < 0 || b.min > 1 {
			return fmt.Errorf("%w: %s_min must be between 0.0 and 1.0", ErrInvalid, b.name)
		}
		if b.max < 0 || b.max > 1 {
			return fmt.Errorf("%w: %s_max must be between 0.0 and 1.0", ErrInvalid, b.name)
		}
		if b.min > b.max {
			return fmt.Errorf("%w: %s_min must be <= %s_max", ErrInvalid, b.name, b.name)
		}
	}

	return nil
}

// Normalization returns the HSV filter and clamp options.
func (s Settings) Normalization() colour.NormalizeOptions {
	return colour.NormalizeOptions{
		SkipSaturation:  s.SkipSaturation,
		SaturationSkip:  colour.Range{Min: s.SkipSaturationMin, Max: s.SkipSaturationMax},
		SkipValue:       s.SkipValue,
		ValueSkip:       colour.Range{Min: s.SkipValueMin, Max: s.SkipValueMax},
		ClampSaturation: s.ClampSaturation,
		SaturationClamp: colour.Range{Min: s.ClampSaturationMin, Max: s.ClampSaturationMax},
		ClampValue:      s.ClampValue,
		ValueClamp:      colour.Range{Min: s.ClampValueMin, Max: s.ClampValueMax},
	}
}

// Scheme returns the accent options for the synthesizer. In light mode the
// background and foreground base colours trade places.
func (s Settings) Scheme() colour.SchemeOptions {
	bg, fg := s.BgColor, s.FgColor
	if s.Light {
		bg, fg = fg, bg
	}
	return colour.SchemeOptions{
		Background:         bg,
		BackgroundIndex:    s.BgIdx,
		BackgroundStrength: s.BgStrength,
		Foreground:         fg,
		ForegroundIndex:    s.FgIdx,
		ForegroundStrength: s.FgStrength,
	}
}
