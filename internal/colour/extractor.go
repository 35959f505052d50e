package colour

import (
	"fmt"
	"slices"
	"strings"
)

// PaletteSize is the number of colours requested from every backend.
const PaletteSize = 8

// Quantizer reduces a list of sRGB samples to at most count representative
// colours. Implementations hold no mutable state between calls.
type Quantizer interface {
	// Quantize returns the reduced palette, or an error wrapping
	// ErrQuantization when it cannot produce one.
	Quantize(samples []RGB, count int) ([]RGB, error)
}

// Backend names a quantisation strategy.
type Backend string

const (
	// BackendKMeans clusters samples in CIE Lab with three seeded restarts.
	BackendKMeans Backend = "kmeans"

	// BackendThief uses modified median cut quantisation over a colour histogram.
	BackendThief Backend = "thief"
)

// ValidBackends returns the list of valid backend names.
func ValidBackends() []Backend {
	return []Backend{BackendKMeans, BackendThief}
}

// ParseBackend resolves a backend name. The historical names "colorz" and
// "colorthief" are accepted as aliases.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "kmeans", "colorz":
		return BackendKMeans, nil
	case "thief", "colorthief":
		return BackendThief, nil
	default:
		return "", fmt.Errorf("unknown backend: %s (valid backends: %v)", name, ValidBackends())
	}
}

// IsValid reports whether b is one of ValidBackends.
func (b Backend) IsValid() bool {
	return slices.Contains(ValidBackends(), b)
}

// String returns the backend name.
func (b Backend) String() string {
	return string(b)
}

// MarshalText implements encoding.TextMarshaler.
func (b Backend) MarshalText() ([]byte, error) {
	return []byte(b), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting aliases.
func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// NewQuantizer creates the Quantizer for a backend.
func NewQuantizer(b Backend) (Quantizer, error) {
	switch b {
	case BackendKMeans:
		return NewKMeansQuantizer(), nil
	case BackendThief:
		return NewThiefQuantizer(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s (valid backends: %v)", b, ValidBackends())
	}
}
