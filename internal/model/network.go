package model

import (
	"fmt"
	"math/rand"
)

// Network is a feed-forward network with one sigmoid hidden layer.
type Network struct {
	hidden *Layer
	output *Layer

	inputsSet bool
	hiddenOut []float64
	out       []float64
}

// NewNetwork builds a network of the given widths with weights drawn from a
// PRNG seeded with seed.
func NewNetwork(inputs, hidden, outputs int, seed int64) (*Network, error) {
	return NewNetworkRand(inputs, hidden, outputs, rand.New(rand.NewSource(seed)))
}

// NewNetworkRand is NewNetwork with a caller-supplied PRNG. Hidden weights
// are drawn before output weights.
func NewNetworkRand(inputs, hidden, outputs int, rng *rand.Rand) (*Network, error) {
	h, err := NewLayer(hidden, inputs, rng)
	if err != nil {
		return nil, fmt.Errorf("hidden layer: %w", err)
	}
	o, err := NewLayer(outputs, hidden, rng)
	if err != nil {
		return nil, fmt.Errorf("output layer: %w", err)
	}
	return &Network{hidden: h, output: o}, nil
}

func (n *Network) Inputs() int  { return n.hidden.Inputs() }
func (n *Network) Hidden() int  { return n.hidden.Size() }
func (n *Network) Outputs() int { return n.output.Size() }

// SetInputs assigns the input vector for the next Forward call.
func (n *Network) SetInputs(x []float64) error {
	if err := n.hidden.SetInputs(x); err != nil {
		return err
	}
	n.inputsSet = true
	return nil
}

// Forward runs the network on the inputs last set and caches the hidden and
// output activations.
func (n *Network) Forward() ([]float64, error) {
	if !n.inputsSet {
		return nil, ErrMissingInputs
	}
	h, err := n.hidden.CalculateOutputs()
	if err != nil {
		return nil, err
	}
	if err := n.output.SetInputs(h); err != nil {
		return nil, err
	}
	o, err := n.output.CalculateOutputs()
	if err != nil {
		return nil, err
	}
	n.hiddenOut = h
	n.out = o
	return append([]float64(nil), o...), nil
}

// Predict is SetInputs followed by Forward.
func (n *Network) Predict(x []float64) ([]float64, error) {
	if err := n.SetInputs(x); err != nil {
		return nil, err
	}
	return n.Forward()
}

// HiddenOutputs returns the hidden activations of the last forward pass.
func (n *Network) HiddenOutputs() []float64 {
	return append([]float64(nil), n.hiddenOut...)
}

// LastOutputs returns the output vector of the last forward pass.
func (n *Network) LastOutputs() []float64 {
	return append([]float64(nil), n.out...)
}

func (n *Network) HiddenWeights() [][]float64 { return n.hidden.Weights() }
func (n *Network) OutputWeights() [][]float64 { return n.output.Weights() }

func (n *Network) SetHiddenWeights(w [][]float64) error {
	if err := n.hidden.SetWeights(w); err != nil {
		return fmt.Errorf("hidden layer: %w", err)
	}
	return nil
}

func (n *Network) SetOutputWeights(w [][]float64) error {
	if err := n.output.SetWeights(w); err != nil {
		return fmt.Errorf("output layer: %w", err)
	}
	return nil
}
