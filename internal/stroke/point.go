package stroke

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrDegenerateStroke reports a stroke too short to process.
var ErrDegenerateStroke = errors.New("stroke: degenerate stroke")

// RawPoint is a pixel coordinate captured from the drawing surface.
type RawPoint struct {
	X, Y int
}

// Point is a real-valued 2-D coordinate.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
}

// Centroid returns the mean of the points. It panics on an empty slice.
func Centroid(points []Point) Point {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	n := float64(len(points))
	return Point{X: floats.Sum(xs) / n, Y: floats.Sum(ys) / n}
}

// Flatten interleaves the coordinates as x0, y0, x1, y1, ...
func Flatten(points []Point) []float64 {
	out := make([]float64, 0, 2*len(points))
	for _, p := range points {
		out = append(out, p.X, p.Y)
	}
	return out
}
