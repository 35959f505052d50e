// Package cache stores computed colorschemes keyed by a fingerprint of the
// effective settings and the image name, and publishes the current scheme.
package cache

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmylchreest/gwal/internal/colour"
	"github.com/jmylchreest/gwal/internal/config"
)

// fieldSeparator keeps adjacent numeric fields from running together.
const fieldSeparator = "_"

// Fingerprint derives the cache key for settings and an image. Every field
// of s is written in a fixed order followed by the image's base name.
//
// Only the base name identifies the image, so two different files with the
// same name in different directories share a key.
func Fingerprint(s config.Settings, imagePath string) string {
	hex := func(c colour.RGB) string { return strings.TrimPrefix(c.Hex(), "#") }
	float := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	fields := []string{
		s.Backend.String(),
		strconv.Itoa(s.ThumbW),
		strconv.Itoa(s.ThumbH),
		hex(s.BgColor),
		strconv.Itoa(s.BgIdx),
		strconv.Itoa(int(s.BgStrength)),
		hex(s.FgColor),
		strconv.Itoa(s.FgIdx),
		strconv.Itoa(int(s.FgStrength)),
		strconv.FormatBool(s.Light),
		strconv.FormatBool(s.ClampSaturation),
		strconv.FormatBool(s.ClampValue),
		strconv.FormatBool(s.SkipSaturation),
		strconv.FormatBool(s.SkipValue),
		float(s.ClampValueMin),
		float(s.ClampValueMax),
		float(s.ClampSaturationMin),
		float(s.ClampSaturationMax),
		float(s.SkipValueMin),
		float(s.SkipValueMax),
		float(s.SkipSaturationMin),
		float(s.SkipSaturationMax),
		filepath.Base(imagePath),
	}
	return strings.Join(fields, fieldSeparator)
}
