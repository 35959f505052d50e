package colour

// Range is an inclusive (min, max) bound within [0, 1].
type Range struct {
	Min float64
	Max float64
}

// Clamp limits v to [r.Min, r.Max].
func (r Range) Clamp(v float64) float64 {
	return min(max(v, r.Min), r.Max)
}

// ContainsExclusive reports whether r.Min < v < r.Max.
func (r Range) ContainsExclusive(v float64) bool {
	return v > r.Min && v < r.Max
}

// NormalizeOptions selects which HSV skip filters and clamps are applied to
// the image samples before quantisation.
type NormalizeOptions struct {
	SkipSaturation bool
	SaturationSkip Range
	SkipValue      bool
	ValueSkip      Range

	ClampSaturation bool
	SaturationClamp Range
	ClampValue      bool
	ValueClamp      Range
}

// Normalize filters and clamps samples in HSV space and returns the
// survivors as sRGB. Skip filters keep only samples strictly inside their
// range; clamps run after filtering. The result may be empty.
func Normalize(samples []RGB, opts NormalizeOptions) []RGB {
	out := make([]RGB, 0, len(samples))
	for _, sample := range samples {
		hsv, ok := opts.apply(sample.ToHSV())
		if !ok {
			continue
		}
		out = append(out, hsv.ToRGB())
	}
	return out
}

// apply runs the filters and clamps on a single HSV sample. The second
// return value is false when the sample is skipped.
func (o NormalizeOptions) apply(hsv HSV) (HSV, bool) {
	if o.SkipSaturation && !o.SaturationSkip.ContainsExclusive(hsv.S) {
		return hsv, false
	}
	if o.SkipValue && !o.ValueSkip.ContainsExclusive(hsv.V) {
		return hsv, false
	}

	if o.ClampSaturation {
		hsv.S = o.SaturationClamp.Clamp(hsv.S)
	}
	if o.ClampValue {
		hsv.V = o.ValueClamp.Clamp(hsv.V)
	}
	return hsv, true
}
