package trainer

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"strokenet/internal/metrics"
	"strokenet/internal/model"
)

// Train runs epochs rounds of full-batch gradient descent on net. rate is
// multiplied into every weight change as given. Shapes are checked before
// any weight is touched; training with zero epochs leaves net unchanged.
func Train(net *model.Network, set model.TrainingSet, epochs, rate int) error {
	if epochs < 0 {
		return fmt.Errorf("trainer: epochs must be >= 0 (got %d)", epochs)
	}
	if err := set.Validate(net.Inputs(), net.Outputs()); err != nil {
		return err
	}
	for e := 0; e < epochs; e++ {
		if _, err := Epoch(net, set, rate); err != nil {
			return err
		}
	}
	return nil
}

// Epoch performs a single gradient descent step over the whole set and
// returns the mean squared error of the outputs seen before the update.
func Epoch(net *model.Network, set model.TrainingSet, rate int) (float64, error) {
	if net == nil {
		return 0, errors.New("trainer: nil network")
	}
	if err := set.Validate(net.Inputs(), net.Outputs()); err != nil {
		return 0, err
	}
	g, err := computeGradients(net, set)
	if err != nil {
		return 0, err
	}

	eta := float64(rate)
	out := net.OutputWeights()
	for m := range out {
		floats.AddScaled(out[m], eta, g.output[m])
	}
	hid := net.HiddenWeights()
	for m := range hid {
		floats.AddScaled(hid[m], eta, g.hidden[m])
	}

	if err := net.SetOutputWeights(out); err != nil {
		return 0, err
	}
	if err := net.SetHiddenWeights(hid); err != nil {
		return 0, err
	}
	return g.loss, nil
}

// gradients holds the averaged weight changes Δ (the negative gradient of
// half the summed squared error) for both layers.
type gradients struct {
	output [][]float64
	hidden [][]float64
	loss   float64

	// output weights as they were before the update
	outputWeights [][]float64
}

func computeGradients(net *model.Network, set model.TrainingSet) (*gradients, error) {
	samples := set.Len()
	outputs := make([][]float64, samples)
	hiddens := make([][]float64, samples)
	for s, x := range set.Inputs {
		o, err := net.Predict(x)
		if err != nil {
			return nil, err
		}
		outputs[s] = o
		hiddens[s] = net.HiddenOutputs()
	}

	numOut := net.Outputs()
	numHid := net.Hidden()
	numIn := net.Inputs()
	inv := 1 / float64(samples)

	// errTerm[s][k] = (t−o)·o·(1−o)
	errTerm := make([][]float64, samples)
	for s := range outputs {
		errTerm[s] = make([]float64, numOut)
		for k, o := range outputs[s] {
			errTerm[s][k] = (set.Targets[s][k] - o) * o * (1 - o)
		}
	}

	g := &gradients{
		output:        newMatrix(numOut, numHid+1),
		hidden:        newMatrix(numHid, numIn+1),
		loss:          metrics.MeanSquaredError(outputs, set.Targets),
		outputWeights: net.OutputWeights(),
	}

	for m := 0; m < numOut; m++ {
		for w := 0; w <= numHid; w++ {
			sum := 0.0
			for s := 0; s < samples; s++ {
				a := 1.0
				if w < numHid {
					a = hiddens[s][w]
				}
				sum += errTerm[s][m] * a
			}
			g.output[m][w] = sum * inv
		}
	}

	// back[s][m] = h·(1−h)·Σ_k errTerm[s][k]·W_out[k][m], using the
	// pre-update output weights.
	back := newMatrix(samples, numHid)
	column := make([]float64, numOut)
	for m := 0; m < numHid; m++ {
		for k := 0; k < numOut; k++ {
			column[k] = g.outputWeights[k][m]
		}
		for s := 0; s < samples; s++ {
			h := hiddens[s][m]
			back[s][m] = h * (1 - h) * floats.Dot(errTerm[s], column)
		}
	}

	for m := 0; m < numHid; m++ {
		for w := 0; w <= numIn; w++ {
			sum := 0.0
			for s := 0; s < samples; s++ {
				x := 1.0
				if w < numIn {
					x = set.Inputs[s][w]
				}
				sum += back[s][m] * x
			}
			g.hidden[m][w] = sum * inv
		}
	}

	return g, nil
}

func newMatrix(rows, cols int) [][]float64 {
	data := make([]float64, rows*cols)
	m := make([][]float64, rows)
	for i := range m {
		m[i] = data[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}
