package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreviewWithText returns a colour block with centred text whose
// colour is chosen for contrast against the block.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	ink := Black
	if luminance(c) <= 0.5 {
		ink = White
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, ink.R, ink.G, ink.B, ansiSuffix)

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bgColour + fgColour + displayText + ansiReset
}

// ANSIPreview renders the scheme as two rows of eight labelled swatches:
// t0..t7 above t8..t15.
func (cs Colorscheme) ANSIPreview() string {
	var b strings.Builder
	for row, half := range [][8]RGB{cs.Dark(), cs.Light()} {
		for col, c := range half {
			b.WriteString(ColourPreviewWithText(c, fmt.Sprintf("t%d", row*8+col), defaultWidth))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// luminance returns the WCAG relative luminance of a colour in [0, 1].
func luminance(c RGB) float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
