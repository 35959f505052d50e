package colour

import (
	"math"
	"testing"
)

func TestHSVRoundTrip(t *testing.T) {
	colours := []RGB{
		Black, White,
		{R: 255}, {G: 255}, {B: 255},
		{R: 12, G: 200, B: 77},
		{R: 128, G: 128, B: 128},
		{R: 250, G: 3, B: 129},
		{R: 1, G: 2, B: 3},
	}

	near := func(a, b uint8) bool { return math.Abs(float64(a)-float64(b)) <= 1 }

	for _, c := range colours {
		got := c.ToHSV().ToRGB()
		if !near(got.R, c.R) || !near(got.G, c.G) || !near(got.B, c.B) {
			t.Errorf("round trip of %s = %s", c.Hex(), got.Hex())
		}
	}
}

func TestHue(t *testing.T) {
	tests := []struct {
		rgb  RGB
		want float64
	}{
		{RGB{R: 255}, 0},
		{RGB{G: 255}, 120},
		{RGB{B: 255}, 240},
		{RGB{R: 128, G: 128, B: 128}, 0},
		{Black, 0},
	}

	for _, tt := range tests {
		if got := tt.rgb.Hue(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s.Hue() = %v, want %v", tt.rgb.Hex(), got, tt.want)
		}
	}
}

func TestNormalizeOptionsApply(t *testing.T) {
	skipBoth := NormalizeOptions{
		SkipSaturation: true,
		SaturationSkip: Range{Min: 0.3, Max: 0.7},
		SkipValue:      true,
		ValueSkip:      Range{Min: 0.1, Max: 0.9},
	}
	clampBoth := NormalizeOptions{
		ClampSaturation: true,
		SaturationClamp: Range{Min: 0.4, Max: 0.41},
		ClampValue:      true,
		ValueClamp:      Range{Min: 0.4, Max: 0.5},
	}

	tests := []struct {
		name     string
		opts     NormalizeOptions
		in       HSV
		want     HSV
		wantKeep bool
	}{
		{
			name:     "no options keeps sample",
			in:       HSV{H: 10, S: 1, V: 1},
			want:     HSV{H: 10, S: 1, V: 1},
			wantKeep: true,
		},
		{
			name:     "inside skip ranges",
			opts:     skipBoth,
			in:       HSV{H: 10, S: 0.5, V: 0.5},
			want:     HSV{H: 10, S: 0.5, V: 0.5},
			wantKeep: true,
		},
		{
			name: "saturation on lower bound is skipped",
			opts: skipBoth,
			in:   HSV{S: 0.3, V: 0.5},
		},
		{
			name: "saturation on upper bound is skipped",
			opts: skipBoth,
			in:   HSV{S: 0.7, V: 0.5},
		},
		{
			name: "value on bound is skipped",
			opts: skipBoth,
			in:   HSV{S: 0.5, V: 0.9},
		},
		{
			name: "value below range is skipped",
			opts: skipBoth,
			in:   HSV{S: 0.5, V: 0},
		},
		{
			name:     "clamps pull into range",
			opts:     clampBoth,
			in:       HSV{H: 200, S: 1, V: 0.1},
			want:     HSV{H: 200, S: 0.41, V: 0.4},
			wantKeep: true,
		},
		{
			name:     "clamps keep values inside range",
			opts:     clampBoth,
			in:       HSV{H: 200, S: 0.405, V: 0.45},
			want:     HSV{H: 200, S: 0.405, V: 0.45},
			wantKeep: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := tt.opts.apply(tt.in)
			if keep != tt.wantKeep {
				t.Fatalf("apply(%+v) keep = %v, want %v", tt.in, keep, tt.wantKeep)
			}
			if keep && got != tt.want {
				t.Errorf("apply(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("filters run before clamps", func(t *testing.T) {
		opts := NormalizeOptions{
			SkipSaturation:  true,
			SaturationSkip:  Range{Min: 0.3, Max: 0.7},
			ClampSaturation: true,
			SaturationClamp: Range{Min: 0.4, Max: 0.41},
		}
		// Fully saturated red would be clamped into range, but is filtered first.
		if got := Normalize([]RGB{{R: 255}}, opts); len(got) != 0 {
			t.Errorf("Normalize() = %v, want empty", got)
		}
	})

	t.Run("every sample filtered", func(t *testing.T) {
		opts := NormalizeOptions{SkipValue: true, ValueSkip: Range{Min: 0.1, Max: 0.9}}
		if got := Normalize([]RGB{Black, White}, opts); len(got) != 0 {
			t.Errorf("Normalize() = %v, want empty", got)
		}
	})

	t.Run("order is preserved", func(t *testing.T) {
		in := []RGB{{R: 200, G: 10, B: 10}, {R: 10, G: 200, B: 10}, {R: 10, G: 10, B: 200}}
		got := Normalize(in, NormalizeOptions{})
		if len(got) != len(in) {
			t.Fatalf("Normalize() returned %d colours, want %d", len(got), len(in))
		}
		for i := range in {
			if got[i] != in[i] {
				t.Errorf("Normalize()[%d] = %s, want %s", i, got[i].Hex(), in[i].Hex())
			}
		}
	})

	t.Run("clamp value", func(t *testing.T) {
		opts := NormalizeOptions{ClampValue: true, ValueClamp: Range{Min: 0, Max: 0.5}}
		got := Normalize([]RGB{White}, opts)
		if len(got) != 1 {
			t.Fatalf("Normalize() returned %d colours, want 1", len(got))
		}
		// V 0.5 of white rounds to 128.
		if got[0] != (RGB{R: 128, G: 128, B: 128}) {
			t.Errorf("Normalize() = %s, want #808080", got[0].Hex())
		}
	})
}
