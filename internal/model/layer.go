package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// sigmoidClamp bounds the pre-activation so exp never overflows.
const sigmoidClamp = 500

// Sigmoid is the logistic function 1/(1+e^-z).
func Sigmoid(z float64) float64 {
	if z > sigmoidClamp {
		z = sigmoidClamp
	} else if z < -sigmoidClamp {
		z = -sigmoidClamp
	}
	return 1 / (1 + math.Exp(-z))
}

// Layer is a fully connected sigmoid layer. Row m of the weight matrix holds
// neuron m's input weights followed by its bias in the last column.
type Layer struct {
	neurons int
	inputs  int
	weights *mat.Dense
	in      []float64
}

// NewLayer creates a layer with every weight drawn uniformly from [0, 1).
func NewLayer(neurons, inputs int, rng *rand.Rand) (*Layer, error) {
	if neurons < 1 || inputs < 1 {
		return nil, fmt.Errorf("%w: layer needs at least one neuron and one input (got %d, %d)", ErrShapeMismatch, neurons, inputs)
	}
	data := make([]float64, neurons*(inputs+1))
	for i := range data {
		data[i] = rng.Float64()
	}
	return &Layer{
		neurons: neurons,
		inputs:  inputs,
		weights: mat.NewDense(neurons, inputs+1, data),
	}, nil
}

// Size returns the neuron count.
func (l *Layer) Size() int { return l.neurons }

// Inputs returns the input width, excluding the bias.
func (l *Layer) Inputs() int { return l.inputs }

// SetInputs stores a copy of v for the next CalculateOutputs call.
func (l *Layer) SetInputs(v []float64) error {
	if len(v) != l.inputs {
		return fmt.Errorf("%w: layer expects %d inputs, got %d", ErrShapeMismatch, l.inputs, len(v))
	}
	l.in = append(l.in[:0], v...)
	return nil
}

// Weights returns a copy of the weight matrix as rows.
func (l *Layer) Weights() [][]float64 {
	rows := make([][]float64, l.neurons)
	for m := range rows {
		rows[m] = mat.Row(nil, m, l.weights)
	}
	return rows
}

// SetWeights replaces the whole weight matrix. Nothing is changed on error.
func (l *Layer) SetWeights(w [][]float64) error {
	if len(w) != l.neurons {
		return fmt.Errorf("%w: got %d weight rows, want %d", ErrShapeMismatch, len(w), l.neurons)
	}
	for m, row := range w {
		if len(row) != l.inputs+1 {
			return fmt.Errorf("%w: weight row %d has %d columns, want %d", ErrShapeMismatch, m, len(row), l.inputs+1)
		}
	}
	for m, row := range w {
		l.weights.SetRow(m, row)
	}
	return nil
}

// CalculateOutputs returns σ(W·[v, 1]) for the inputs last set.
func (l *Layer) CalculateOutputs() ([]float64, error) {
	if l.in == nil {
		return nil, ErrMissingInputs
	}
	w := l.weights.Slice(0, l.neurons, 0, l.inputs)
	var z mat.VecDense
	z.MulVec(w, mat.NewVecDense(l.inputs, l.in))

	out := make([]float64, l.neurons)
	for m := range out {
		out[m] = Sigmoid(z.AtVec(m) + l.weights.At(m, l.inputs))
	}
	return out, nil
}
