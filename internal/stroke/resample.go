package stroke

import (
	"fmt"
	"math"
)

// Resample picks n points of the stroke spaced as evenly as possible along
// its arc length. Each output is an input point: the one whose cumulative
// distance is nearest to k·total/(n−1), lowest index on ties.
func Resample(points []Point, n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 output points, got %d", ErrDegenerateStroke, n)
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 input points, got %d", ErrDegenerateStroke, len(points))
	}

	dist := ArcLengths(points)
	total := dist[len(dist)-1]

	out := make([]Point, n)
	for k := 0; k < n; k++ {
		target := float64(k) * total / float64(n-1)
		out[k] = points[nearest(dist, target)]
	}
	return out, nil
}

// ArcLengths returns the cumulative distance travelled up to each point.
func ArcLengths(points []Point) []float64 {
	dist := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		dist[i] = dist[i-1] + Distance(points[i-1], points[i])
	}
	return dist
}

func nearest(dist []float64, target float64) int {
	best := 0
	bestDiff := math.Abs(dist[0] - target)
	for j := 1; j < len(dist); j++ {
		if d := math.Abs(dist[j] - target); d < bestDiff {
			best = j
			bestDiff = d
		}
	}
	return best
}
