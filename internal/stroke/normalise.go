package stroke

import (
	"fmt"
	"math"
)

// Normalise centres raw on its centroid and divides every coordinate by the
// largest absolute centred coordinate, so the result fits in [-1, 1]².
// A stroke whose points all coincide normalises to zeros.
func Normalise(raw []RawPoint) ([]Point, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty stroke", ErrDegenerateStroke)
	}
	points := make([]Point, len(raw))
	for i, p := range raw {
		points[i] = Point{X: float64(p.X), Y: float64(p.Y)}
	}
	c := Centroid(points)

	scale := 0.0
	for i := range points {
		p := &points[i]
		p.X -= c.X
		p.Y -= c.Y
		scale = math.Max(scale, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if scale > 0 {
		for i := range points {
			points[i].X /= scale
			points[i].Y /= scale
		}
	}
	return points, nil
}
