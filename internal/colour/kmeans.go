package colour

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// KMeansQuantizer clusters samples with weighted k-means in CIE Lab.
// Clustering is restarted once per seed and the run with the lowest score
// (weighted sum of squared distances to the assigned centroid) wins.
type KMeansQuantizer struct {
	maxIterations int
	convergence   float64
	seeds         []int64
}

// NewKMeansQuantizer creates a KMeansQuantizer with default settings.
func NewKMeansQuantizer() *KMeansQuantizer {
	return &KMeansQuantizer{
		maxIterations: 100,
		convergence:   0.001,
		seeds:         []int64{64, 65, 66},
	}
}

// Quantize returns exactly count colours. When the samples hold fewer
// distinct colours than count, the shortfall is padded with black.
func (q *KMeansQuantizer) Quantize(samples []RGB, count int) ([]RGB, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrQuantization, ErrEmptyInput)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: colour count must be at least 1, got %d", ErrQuantization, count)
	}

	points := uniqueLabPoints(samples)

	palette := make([]RGB, 0, count)
	if len(points) <= count {
		// Every distinct colour is already its own cluster.
		for _, p := range points {
			palette = append(palette, p.rgb)
		}
		return padBlack(palette, count), nil
	}

	best := clustering{score: math.Inf(1)}
	for _, seed := range q.seeds {
		run := q.cluster(points, count, rand.New(rand.NewSource(seed)))
		if run.score < best.score {
			best = run
		}
	}

	for _, c := range best.centroids {
		palette = append(palette, fromColorful(colorful.Lab(c.l, c.a, c.b)))
	}
	return padBlack(palette, count), nil
}

// labPoint is a distinct sample colour in Lab with its multiplicity.
type labPoint struct {
	l, a, b float64
	weight  float64
	rgb     RGB
}

func (p labPoint) distanceSq(other labPoint) float64 {
	dl := p.l - other.l
	da := p.a - other.a
	db := p.b - other.b
	return dl*dl + da*da + db*db
}

type clustering struct {
	centroids []labPoint
	score     float64
}

// uniqueLabPoints collapses samples into distinct colours, keeping first-seen
// order so clustering is deterministic.
func uniqueLabPoints(samples []RGB) []labPoint {
	index := make(map[RGB]int, len(samples))
	points := make([]labPoint, 0, len(samples))
	for _, s := range samples {
		if i, ok := index[s]; ok {
			points[i].weight++
			continue
		}
		l, a, b := s.colorful().Lab()
		index[s] = len(points)
		points = append(points, labPoint{l: l, a: a, b: b, weight: 1, rgb: s})
	}
	return points
}

func (q *KMeansQuantizer) cluster(points []labPoint, k int, rng *rand.Rand) clustering {
	centroids := initializeCentroidsKMeansPlusPlus(points, k, rng)
	assignments := make([]int, len(points))

	for iter := 0; iter < q.maxIterations; iter++ {
		for i, p := range points {
			assignments[i] = nearestCentroid(p, centroids)
		}

		next := recalculateCentroids(points, assignments, centroids)

		movement := 0.0
		for i := range centroids {
			movement += math.Sqrt(centroids[i].distanceSq(next[i]))
		}
		centroids = next

		if movement < q.convergence {
			break
		}
	}

	score := 0.0
	for _, p := range points {
		nearest := nearestCentroid(p, centroids)
		score += p.weight * p.distanceSq(centroids[nearest])
	}

	return clustering{centroids: centroids, score: score}
}

// initializeCentroidsKMeansPlusPlus picks k distinct starting centroids with
// probability proportional to weight times squared distance.
func initializeCentroidsKMeansPlusPlus(points []labPoint, k int, rng *rand.Rand) []labPoint {
	centroids := make([]labPoint, 0, k)
	chosen := make([]bool, len(points))

	totalWeight := 0.0
	for _, p := range points {
		totalWeight += p.weight
	}
	first := pickWeighted(rng.Float64()*totalWeight, len(points), func(i int) float64 {
		return points[i].weight
	})
	centroids = append(centroids, points[first])
	chosen[first] = true

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			if chosen[i] {
				distances[i] = 0
				continue
			}
			minDist := math.MaxFloat64
			for _, c := range centroids {
				minDist = min(minDist, p.distanceSq(c))
			}
			distances[i] = minDist * p.weight
			total += distances[i]
		}

		next := -1
		if total > 0 {
			next = pickWeighted(rng.Float64()*total, len(points), func(i int) float64 {
				return distances[i]
			})
		}
		if next < 0 || chosen[next] {
			// Degenerate distances; take the first unused point.
			for i := range points {
				if !chosen[i] {
					next = i
					break
				}
			}
		}
		centroids = append(centroids, points[next])
		chosen[next] = true
	}

	return centroids
}

// pickWeighted returns the first index whose cumulative weight reaches target.
func pickWeighted(target float64, n int, weight func(int) float64) int {
	cumulative := 0.0
	last := -1
	for i := 0; i < n; i++ {
		w := weight(i)
		if w <= 0 {
			continue
		}
		last = i
		cumulative += w
		if cumulative >= target {
			return i
		}
	}
	return last
}

func nearestCentroid(p labPoint, centroids []labPoint) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := p.distanceSq(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the weighted mean of its
// members. Empty clusters keep their previous position.
func recalculateCentroids(points []labPoint, assignments []int, previous []labPoint) []labPoint {
	sums := make([]labPoint, len(previous))
	for i, p := range points {
		c := &sums[assignments[i]]
		c.l += p.l * p.weight
		c.a += p.a * p.weight
		c.b += p.b * p.weight
		c.weight += p.weight
	}

	next := make([]labPoint, len(previous))
	for i, s := range sums {
		if s.weight == 0 {
			next[i] = previous[i]
			continue
		}
		next[i] = labPoint{l: s.l / s.weight, a: s.a / s.weight, b: s.b / s.weight, weight: s.weight}
	}
	return next
}

func padBlack(palette []RGB, count int) []RGB {
	for len(palette) < count {
		palette = append(palette, Black)
	}
	return palette
}
