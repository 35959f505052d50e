package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/gwal/internal/colour"
)

// Overrides holds command-line values for every setting. Only flags the user
// actually set are applied by Apply.
type Overrides struct {
	flags *pflag.FlagSet

	backend string
	thumbW  int
	thumbH  int

	bg         string
	bgIdx      int
	bgStrength int
	fg         string
	fgIdx      int
	fgStrength int

	light           bool
	clampSaturation bool
	clampValue      bool
	skipSaturation  bool
	skipValue       bool

	clampSMin, clampSMax float64
	clampVMin, clampVMax float64
	skipSMin, skipSMax   float64
	skipVMin, skipVMax   float64
}

// RegisterFlags defines the override flags on fs.
func (o *Overrides) RegisterFlags(fs *pflag.FlagSet) {
	o.flags = fs
	d := Default()

	fs.StringVar(&o.backend, "backend", d.Backend.String(), "quantisation backend (kmeans, thief)")
	fs.IntVar(&o.thumbW, "thumb-w", d.ThumbW, "thumbnail width (min 1)")
	fs.IntVar(&o.thumbH, "thumb-h", d.ThumbH, "thumbnail height (min 1)")

	fs.StringVar(&o.bg, "bg", d.BgColor.Hex(), "background colour (#rrggbb)")
	fs.IntVar(&o.bgIdx, "bg-idx", d.BgIdx, "palette colour to mix with bg (0-7)")
	fs.IntVar(&o.bgStrength, "bg-str", int(d.BgStrength), "amount of palette colour to apply to bg (0-100)")
	fs.StringVar(&o.fg, "fg", d.FgColor.Hex(), "foreground colour (#rrggbb)")
	fs.IntVar(&o.fgIdx, "fg-idx", d.FgIdx, "palette colour to mix with fg (0-7)")
	fs.IntVar(&o.fgStrength, "fg-str", int(d.FgStrength), "amount of palette colour to apply to fg (0-100)")

	fs.BoolVarP(&o.light, "light", "l", false, "generate light colorscheme")
	fs.BoolVar(&o.clampSaturation, "clamp-saturation", false, "clamp saturation")
	fs.BoolVar(&o.clampValue, "clamp-value", false, "clamp value")
	fs.BoolVar(&o.skipSaturation, "skip-saturation", false, "skip samples outside the saturation range")
	fs.BoolVar(&o.skipValue, "skip-value", false, "skip samples outside the value range")

	fs.Float64Var(&o.clampSMin, "clamp-s-min", d.ClampSaturationMin, "min saturation clamp (0.0-1.0)")
	fs.Float64Var(&o.clampSMax, "clamp-s-max", d.ClampSaturationMax, "max saturation clamp (0.0-1.0)")
	fs.Float64Var(&o.clampVMin, "clamp-v-min", d.ClampValueMin, "min value clamp (0.0-1.0)")
	fs.Float64Var(&o.clampVMax, "clamp-v-max", d.ClampValueMax, "max value clamp (0.0-1.0)")
	fs.Float64Var(&o.skipSMin, "skip-s-min", d.SkipSaturationMin, "min saturation skip (0.0-1.0)")
	fs.Float64Var(&o.skipSMax, "skip-s-max", d.SkipSaturationMax, "max saturation skip (0.0-1.0)")
	fs.Float64Var(&o.skipVMin, "skip-v-min", d.SkipValueMin, "min value skip (0.0-1.0)")
	fs.Float64Var(&o.skipVMax, "skip-v-max", d.SkipValueMax, "max value skip (0.0-1.0)")
}

func (o *Overrides) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}

// Apply merges the explicitly set flags into base. Numeric values are
// clamped to their legal ranges; boolean toggles can only switch a feature
// on. The merged settings are validated.
func (o *Overrides) Apply(base Settings) (Settings, error) {
	s := base

	if o.changed("backend") {
		backend, err := colour.ParseBackend(o.backend)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		s.Backend = backend
	}

	setInt := func(name string, dst *int, v, lo, hi int) {
		if o.changed(name) {
			*dst = min(max(v, lo), hi)
		}
	}
	setInt("thumb-w", &s.ThumbW, o.thumbW, 1, 99999)
	setInt("thumb-h", &s.ThumbH, o.thumbH, 1, 99999)
	setInt("bg-idx", &s.BgIdx, o.bgIdx, 0, colour.PaletteSize-1)
	setInt("fg-idx", &s.FgIdx, o.fgIdx, 0, colour.PaletteSize-1)

	setStrength := func(name string, dst *uint8, v int) {
		if o.changed(name) {
			*dst = uint8(min(max(v, 0), 100))
		}
	}
	setStrength("bg-str", &s.BgStrength, o.bgStrength)
	setStrength("fg-str", &s.FgStrength, o.fgStrength)

	setColour := func(name string, dst *colour.RGB, v string) error {
		if !o.changed(name) {
			return nil
		}
		c, err := colour.ParseHex(v)
		if err != nil {
			return fmt.Errorf("%w: --%s: %w", ErrInvalid, name, err)
		}
		*dst = c
		return nil
	}
	if err := setColour("bg", &s.BgColor, o.bg); err != nil {
		return Settings{}, err
	}
	if err := setColour("fg", &s.FgColor, o.fg); err != nil {
		return Settings{}, err
	}

	s.Light = s.Light || o.light
	s.ClampSaturation = s.ClampSaturation || o.clampSaturation
	s.ClampValue = s.ClampValue || o.clampValue
	s.SkipSaturation = s.SkipSaturation || o.skipSaturation
	s.SkipValue = s.SkipValue || o.skipValue

	setUnit := func(name string, dst *float64, v float64) {
		if o.changed(name) {
			*dst = min(max(v, 0), 1)
		}
	}
	setUnit("clamp-s-min", &s.ClampSaturationMin, o.clampSMin)
	setUnit("clamp-s-max", &s.ClampSaturationMax, o.clampSMax)
	setUnit("clamp-v-min", &s.ClampValueMin, o.clampVMin)
	setUnit("clamp-v-max", &s.ClampValueMax, o.clampVMax)
	setUnit("skip-s-min", &s.SkipSaturationMin, o.skipSMin)
	setUnit("skip-s-max", &s.SkipSaturationMax, o.skipSMax)
	setUnit("skip-v-min", &s.SkipValueMin, o.skipVMin)
	setUnit("skip-v-max", &s.SkipValueMax, o.skipVMax)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
