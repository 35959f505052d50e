package colour

import (
	"github.com/lucasb-eyer/go-colorful"
)

// HSV is a colour in hue/saturation/value form.
// H is in degrees [0, 360); S and V are in [0, 1].
type HSV struct {
	H float64
	S float64
	V float64
}

// ToHSV converts an 8-bit sRGB colour to HSV. Achromatic colours get hue 0.
func (rgb RGB) ToHSV() HSV {
	h, s, v := rgb.colorful().Hsv()
	return HSV{H: h, S: s, V: v}
}

// ToRGB converts back to 8-bit sRGB, rounding each channel to nearest.
func (hsv HSV) ToRGB() RGB {
	return fromColorful(colorful.Hsv(hsv.H, hsv.S, hsv.V))
}

// Hue returns the hue of the colour in degrees.
func (rgb RGB) Hue() float64 {
	return rgb.ToHSV().H
}

func (rgb RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
