package colour

import "errors"

var (
	// ErrEmptyInput is returned when the HSV filters removed every sample.
	ErrEmptyInput = errors.New("no samples left after filtering")

	// ErrQuantization is returned when a backend fails to produce a palette.
	ErrQuantization = errors.New("failed to generate palette")

	// ErrInsufficientPalette is returned when a palette has fewer entries
	// than the synthesizer needs.
	ErrInsufficientPalette = errors.New("not enough colours generated")
)
