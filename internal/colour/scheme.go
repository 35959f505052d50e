package colour

import (
	"bytes"
	"fmt"
	"strings"
)

// SchemeSize is the number of colours in a terminal colorscheme.
const SchemeSize = 16

const (
	// edgeLift is how far t8 and t15 are blended toward white.
	edgeLift = 10
	// paletteLift is how far t9..t14 are blended toward white.
	paletteLift = 30
)

// Colorscheme holds the 16 terminal colours t0..t15. t0 is the background,
// t7 the foreground, and t8..t15 are the lightened companions of t0..t7.
type Colorscheme [SchemeSize]RGB

// Background returns t0.
func (cs Colorscheme) Background() RGB { return cs[0] }

// Foreground returns t7.
func (cs Colorscheme) Foreground() RGB { return cs[7] }

// Dark returns t0..t7.
func (cs Colorscheme) Dark() [8]RGB { return [8]RGB(cs[:8]) }

// Light returns t8..t15.
func (cs Colorscheme) Light() [8]RGB { return [8]RGB(cs[8:]) }

// Hex returns the colours as "#rrggbb" strings in slot order.
func (cs Colorscheme) Hex() []string {
	return HexList(cs[:])
}

// MarshalText encodes the scheme as 16 newline-joined hex colours with no
// trailing newline.
func (cs Colorscheme) MarshalText() ([]byte, error) {
	return []byte(strings.Join(cs.Hex(), "\n")), nil
}

// UnmarshalText decodes the format written by MarshalText. A single trailing
// newline and CRLF line endings are tolerated.
func (cs *Colorscheme) UnmarshalText(text []byte) error {
	text = bytes.ReplaceAll(text, []byte("\r\n"), []byte("\n"))
	text = bytes.TrimSuffix(text, []byte("\n"))

	lines := strings.Split(string(text), "\n")
	if len(lines) != SchemeSize {
		return fmt.Errorf("colorscheme must have %d colours, got %d", SchemeSize, len(lines))
	}

	var decoded Colorscheme
	for i, line := range lines {
		c, err := ParseHex(strings.TrimSpace(line))
		if err != nil {
			return fmt.Errorf("colour t%d: %w", i, err)
		}
		decoded[i] = c
	}
	*cs = decoded
	return nil
}

// SchemeOptions are the accent inputs for Synthesize. Light mode is resolved
// by the caller by swapping Background and Foreground beforehand.
type SchemeOptions struct {
	Background         RGB
	BackgroundIndex    int
	BackgroundStrength uint8

	Foreground         RGB
	ForegroundIndex    int
	ForegroundStrength uint8
}

// Synthesize builds a colorscheme from a hue-ordered palette.
// Palette entry 0 is only reachable through the accent indices; t1..t6 take
// entries 1..6 verbatim.
func Synthesize(palette []RGB, opts SchemeOptions) (Colorscheme, error) {
	if len(palette) < PaletteSize {
		return Colorscheme{}, fmt.Errorf("%w: need %d, got %d", ErrInsufficientPalette, PaletteSize, len(palette))
	}
	if opts.BackgroundIndex < 0 || opts.BackgroundIndex >= PaletteSize {
		return Colorscheme{}, fmt.Errorf("background index %d out of range [0,%d]", opts.BackgroundIndex, PaletteSize-1)
	}
	if opts.ForegroundIndex < 0 || opts.ForegroundIndex >= PaletteSize {
		return Colorscheme{}, fmt.Errorf("foreground index %d out of range [0,%d]", opts.ForegroundIndex, PaletteSize-1)
	}

	var cs Colorscheme
	cs[0] = Mix(opts.Background, palette[opts.BackgroundIndex], opts.BackgroundStrength)
	copy(cs[1:7], palette[1:7])
	cs[7] = Mix(opts.Foreground, palette[opts.ForegroundIndex], opts.ForegroundStrength)

	cs[8] = Mix(cs[0], White, edgeLift)
	for i := 1; i < 7; i++ {
		cs[8+i] = Mix(cs[i], White, paletteLift)
	}
	cs[15] = Mix(cs[7], White, edgeLift)

	return cs, nil
}

// Mix linearly blends a toward b by p percent per channel using truncating
// integer arithmetic: (a*(100-p) + b*p) / 100. p above 100 is treated as 100.
func Mix(a, b RGB, p uint8) RGB {
	pos := uint16(min(p, 100))
	blend := func(x, y uint8) uint8 {
		return uint8((uint16(x)*(100-pos) + uint16(y)*pos) / 100)
	}
	return RGB{
		R: blend(a.R, b.R),
		G: blend(a.G, b.G),
		B: blend(a.B, b.B),
	}
}
