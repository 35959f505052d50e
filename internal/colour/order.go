package colour

import (
	"cmp"
	"slices"
)

// SortByHue returns a copy of palette ordered by ascending hue. The sort is
// stable, so colours with equal hue (including all greys and black, which
// have hue 0) keep their relative order. Colours are returned unchanged;
// only their positions move.
func SortByHue(palette []RGB) []RGB {
	type keyed struct {
		hue float64
		rgb RGB
	}

	entries := make([]keyed, len(palette))
	for i, c := range palette {
		entries[i] = keyed{hue: c.Hue(), rgb: c}
	}

	slices.SortStableFunc(entries, func(a, b keyed) int {
		return cmp.Compare(a.hue, b.hue)
	})

	sorted := make([]RGB, len(entries))
	for i, e := range entries {
		sorted[i] = e.rgb
	}
	return sorted
}
