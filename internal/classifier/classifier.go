package classifier

import (
	"errors"
	"fmt"

	"strokenet/internal/gesture"
	"strokenet/internal/model"
	"strokenet/internal/stroke"
)

// DefaultThreshold is the output level a class must exceed to be reported.
const DefaultThreshold = 0.97

// Result is the outcome of classifying one stroke.
type Result struct {
	Class gesture.Class
	// Outputs is nil when the stroke was too short to evaluate.
	Outputs []float64
}

// Classify preprocesses raw the same way training samples are prepared
// (normalise, resample to points, flatten), evaluates net and applies Decide.
// Degenerate strokes classify as gesture.Unknown without error.
func Classify(net *model.Network, raw []stroke.RawPoint, points int, threshold float64) (Result, error) {
	if want := 2 * points; net.Inputs() != want {
		return Result{}, fmt.Errorf("%w: network takes %d inputs, %d points give %d", model.ErrShapeMismatch, net.Inputs(), points, want)
	}
	norm, err := stroke.Normalise(raw)
	if errors.Is(err, stroke.ErrDegenerateStroke) {
		return Result{Class: gesture.Unknown}, nil
	}
	if err != nil {
		return Result{}, err
	}
	rep, err := stroke.Resample(norm, points)
	if errors.Is(err, stroke.ErrDegenerateStroke) {
		return Result{Class: gesture.Unknown}, nil
	}
	if err != nil {
		return Result{}, err
	}

	outputs, err := net.Predict(stroke.Flatten(rep))
	if err != nil {
		return Result{}, err
	}
	return Result{Class: Decide(outputs, threshold), Outputs: outputs}, nil
}

// Decide returns the first class, in enumeration order, whose output is
// strictly above threshold. When several qualify the lowest index wins.
func Decide(outputs []float64, threshold float64) gesture.Class {
	for i, v := range outputs {
		if i >= gesture.Count {
			break
		}
		if v > threshold {
			return gesture.Class(i)
		}
	}
	return gesture.Unknown
}
