package colour

import (
	"fmt"
	"math"
	"slices"
)

const (
	thiefSigBits    = 5
	thiefShift      = 8 - thiefSigBits
	thiefCells      = 1 << thiefSigBits
	thiefMultiplier = 1 << thiefShift

	// thiefQuality samples every Nth colour.
	thiefQuality = 5

	// thiefFractByPopulation is the share of the target count produced by
	// splitting on population alone before volume is taken into account.
	thiefFractByPopulation = 0.75

	// thiefWhiteThreshold drops near-white samples, which otherwise dominate
	// most photographs.
	thiefWhiteThreshold = 250
)

// ThiefQuantizer implements modified median cut quantisation (MMCQ) over a
// 5-bit-per-channel histogram of the interleaved samples.
type ThiefQuantizer struct {
	quality int
}

// NewThiefQuantizer creates a ThiefQuantizer with the fixed sampling quality.
func NewThiefQuantizer() *ThiefQuantizer {
	return &ThiefQuantizer{quality: thiefQuality}
}

// Quantize returns up to count colours ordered by box population times volume.
// It never pads; a short result is left for the caller to reject.
func (q *ThiefQuantizer) Quantize(samples []RGB, count int) ([]RGB, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrQuantization, ErrEmptyInput)
	}
	if count < 2 || count > 256 {
		return nil, fmt.Errorf("%w: colour count must be between 2 and 256, got %d", ErrQuantization, count)
	}

	hist := newHistogram(samples, q.quality)
	if hist.total == 0 {
		return nil, fmt.Errorf("%w: every sampled colour was near white", ErrQuantization)
	}

	boxes := []colourBox{hist.box(0, thiefCells-1, 0, thiefCells-1, 0, thiefCells-1)}

	byPopulation := func(b colourBox) float64 { return float64(b.population) }
	byProduct := func(b colourBox) float64 { return float64(b.population) * float64(b.volume()) }

	boxes = hist.splitUntil(boxes, int(math.Ceil(thiefFractByPopulation*float64(count))), byPopulation)
	boxes = hist.splitUntil(boxes, count, byProduct)

	slices.SortStableFunc(boxes, func(a, b colourBox) int {
		pa, pb := byProduct(a), byProduct(b)
		switch {
		case pa > pb:
			return -1
		case pa < pb:
			return 1
		default:
			return 0
		}
	})

	palette := make([]RGB, len(boxes))
	for i, b := range boxes {
		palette[i] = hist.average(b)
	}
	return palette, nil
}

// histogram counts samples per 5-bit colour cell.
type histogram struct {
	counts []int
	total  int
}

func histogramIndex(r, g, b int) int {
	return (r << (2 * thiefSigBits)) | (g << thiefSigBits) | b
}

func newHistogram(samples []RGB, quality int) *histogram {
	h := &histogram{counts: make([]int, 1<<(3*thiefSigBits))}
	for i := 0; i < len(samples); i += quality {
		s := samples[i]
		if s.R > thiefWhiteThreshold && s.G > thiefWhiteThreshold && s.B > thiefWhiteThreshold {
			continue
		}
		h.counts[histogramIndex(int(s.R)>>thiefShift, int(s.G)>>thiefShift, int(s.B)>>thiefShift)]++
		h.total++
	}
	return h
}

// colourBox is an axis-aligned region of the histogram, inclusive on both ends,
// shrunk to the tightest bounds around its populated cells.
type colourBox struct {
	lo, hi     [3]int
	population int
}

func (b colourBox) volume() int {
	return (b.hi[0] - b.lo[0] + 1) * (b.hi[1] - b.lo[1] + 1) * (b.hi[2] - b.lo[2] + 1)
}

func (b colourBox) canSplit() bool {
	return b.population > 1 && (b.hi[0] > b.lo[0] || b.hi[1] > b.lo[1] || b.hi[2] > b.lo[2])
}

func (b colourBox) longestAxis() int {
	axis := 0
	for i := 1; i < 3; i++ {
		if b.hi[i]-b.lo[i] > b.hi[axis]-b.lo[axis] {
			axis = i
		}
	}
	return axis
}

func (h *histogram) at(c [3]int) int {
	return h.counts[histogramIndex(c[0], c[1], c[2])]
}

// each calls fn for every cell inside the given bounds.
func each(lo, hi [3]int, fn func(c [3]int)) {
	for r := lo[0]; r <= hi[0]; r++ {
		for g := lo[1]; g <= hi[1]; g++ {
			for b := lo[2]; b <= hi[2]; b++ {
				fn([3]int{r, g, b})
			}
		}
	}
}

// box builds a tight box from the given bounds.
func (h *histogram) box(r1, r2, g1, g2, b1, b2 int) colourBox {
	lo := [3]int{r1, g1, b1}
	hi := [3]int{r2, g2, b2}

	tight := colourBox{lo: hi, hi: lo}
	each(lo, hi, func(c [3]int) {
		n := h.at(c)
		if n == 0 {
			return
		}
		tight.population += n
		for axis := range 3 {
			tight.lo[axis] = min(tight.lo[axis], c[axis])
			tight.hi[axis] = max(tight.hi[axis], c[axis])
		}
	})
	return tight
}

// split cuts a box at the population median of its longest axis. Both
// halves are non-empty because the box is tight.
func (h *histogram) split(b colourBox) (colourBox, colourBox) {
	axis := b.longestAxis()

	partial := make([]int, b.hi[axis]-b.lo[axis]+1)
	running := 0
	for i := b.lo[axis]; i <= b.hi[axis]; i++ {
		lo, hi := b.lo, b.hi
		lo[axis], hi[axis] = i, i
		each(lo, hi, func(c [3]int) { running += h.at(c) })
		partial[i-b.lo[axis]] = running
	}

	cut := b.hi[axis] - 1
	for i, sum := range partial {
		if sum*2 >= b.population {
			cut = min(b.lo[axis]+i, b.hi[axis]-1)
			break
		}
	}

	leftHi, rightLo := b.hi, b.lo
	leftHi[axis] = cut
	rightLo[axis] = cut + 1

	left := h.box(b.lo[0], leftHi[0], b.lo[1], leftHi[1], b.lo[2], leftHi[2])
	right := h.box(rightLo[0], b.hi[0], rightLo[1], b.hi[1], rightLo[2], b.hi[2])
	return left, right
}

// splitUntil repeatedly splits the highest-priority splittable box until
// target boxes exist or nothing can be split further.
func (h *histogram) splitUntil(boxes []colourBox, target int, priority func(colourBox) float64) []colourBox {
	for len(boxes) < target {
		best := -1
		for i, b := range boxes {
			if !b.canSplit() {
				continue
			}
			if best < 0 || priority(b) > priority(boxes[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}

		left, right := h.split(boxes[best])
		boxes[best] = left
		boxes = append(boxes, right)
	}
	return boxes
}

// average returns the population-weighted mean colour of a box.
func (h *histogram) average(b colourBox) RGB {
	var sum [3]float64
	each(b.lo, b.hi, func(c [3]int) {
		n := float64(h.at(c))
		for axis := range 3 {
			sum[axis] += n * (float64(c[axis]) + 0.5) * thiefMultiplier
		}
	})

	channel := func(axis int) uint8 {
		return uint8(min(sum[axis]/float64(b.population), 255))
	}
	return RGB{R: channel(0), G: channel(1), B: channel(2)}
}
