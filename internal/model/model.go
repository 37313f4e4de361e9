package model

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch reports a vector or matrix whose dimensions do not fit
	// the layer or network it was given to.
	ErrShapeMismatch = errors.New("model: shape mismatch")
	// ErrMissingInputs reports a forward pass with no inputs assigned.
	ErrMissingInputs = errors.New("model: inputs not set")
)

// TrainingSet holds parallel input and target rows.
type TrainingSet struct {
	Inputs  [][]float64
	Targets [][]float64
}

// Len returns the number of samples.
func (s TrainingSet) Len() int {
	return len(s.Inputs)
}

// Validate checks that the set is non-empty and that every row matches the
// given input and target widths.
func (s TrainingSet) Validate(inputWidth, targetWidth int) error {
	if len(s.Inputs) == 0 {
		return fmt.Errorf("%w: empty training set", ErrShapeMismatch)
	}
	if len(s.Inputs) != len(s.Targets) {
		return fmt.Errorf("%w: %d inputs but %d targets", ErrShapeMismatch, len(s.Inputs), len(s.Targets))
	}
	for i := range s.Inputs {
		if len(s.Inputs[i]) != inputWidth {
			return fmt.Errorf("%w: input %d has width %d, want %d", ErrShapeMismatch, i, len(s.Inputs[i]), inputWidth)
		}
		if len(s.Targets[i]) != targetWidth {
			return fmt.Errorf("%w: target %d has width %d, want %d", ErrShapeMismatch, i, len(s.Targets[i]), targetWidth)
		}
	}
	return nil
}
