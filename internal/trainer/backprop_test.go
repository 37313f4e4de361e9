package trainer

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"

	"strokenet/internal/metrics"
	"strokenet/internal/model"
)

func identitySet() model.TrainingSet {
	return model.TrainingSet{
		Inputs:  [][]float64{{1, 0}, {0, 1}},
		Targets: [][]float64{{1, 0}, {0, 1}},
	}
}

func mustNetwork(t *testing.T, inputs, hidden, outputs int, seed int64) *model.Network {
	t.Helper()
	net, err := model.NewNetwork(inputs, hidden, outputs, seed)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	return net
}

func mse(t *testing.T, net *model.Network, set model.TrainingSet) float64 {
	t.Helper()
	outputs := make([][]float64, set.Len())
	for i, x := range set.Inputs {
		o, err := net.Predict(x)
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		outputs[i] = o
	}
	return metrics.MeanSquaredError(outputs, set.Targets)
}

func TestTrainShrinksError(t *testing.T) {
	net := mustNetwork(t, 2, 2, 2, 1)
	set := identitySet()
	before := mse(t, net, set)
	if err := Train(net, set, 1000, 1); err != nil {
		t.Fatalf("Train: %v", err)
	}
	after := mse(t, net, set)
	if !(after < before) {
		t.Fatalf("expected error to shrink; before=%f after=%f", before, after)
	}
}

func TestTrainZeroEpochsIsNoop(t *testing.T) {
	net := mustNetwork(t, 2, 3, 2, 5)
	hid, out := net.HiddenWeights(), net.OutputWeights()
	if err := Train(net, identitySet(), 0, 7); err != nil {
		t.Fatalf("Train: %v", err)
	}
	assertSameWeights(t, hid, net.HiddenWeights())
	assertSameWeights(t, out, net.OutputWeights())
}

func TestTrainDeterministic(t *testing.T) {
	a := mustNetwork(t, 2, 3, 2, 11)
	b := mustNetwork(t, 2, 3, 2, 11)
	for _, n := range []*model.Network{a, b} {
		if err := Train(n, identitySet(), 50, 3); err != nil {
			t.Fatalf("Train: %v", err)
		}
	}
	assertSameWeights(t, a.HiddenWeights(), b.HiddenWeights())
	assertSameWeights(t, a.OutputWeights(), b.OutputWeights())
}

func TestTrainRejectsBadShapes(t *testing.T) {
	net := mustNetwork(t, 2, 2, 2, 1)
	hid, out := net.HiddenWeights(), net.OutputWeights()
	bad := model.TrainingSet{
		Inputs:  [][]float64{{1, 0, 0}},
		Targets: [][]float64{{1, 0}},
	}
	if err := Train(net, bad, 10, 1); !errors.Is(err, model.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	if err := Train(net, identitySet(), -1, 1); err == nil {
		t.Fatal("expected error for negative epochs")
	}
	assertSameWeights(t, hid, net.HiddenWeights())
	assertSameWeights(t, out, net.OutputWeights())
}

func TestEpochHiddenUpdateReadsPreUpdateOutputWeights(t *testing.T) {
	net := mustNetwork(t, 3, 4, 2, 21)
	set := model.TrainingSet{
		Inputs:  [][]float64{{0.2, -0.5, 1}, {-1, 0.3, 0.1}, {0.6, 0.6, -0.6}},
		Targets: [][]float64{{1, 0}, {0, 1}, {1, 0}},
	}
	const rate = 4
	hid := net.HiddenWeights()
	out := net.OutputWeights()
	g, err := computeGradients(net, set)
	if err != nil {
		t.Fatalf("computeGradients: %v", err)
	}
	if _, err := Epoch(net, set, rate); err != nil {
		t.Fatalf("Epoch: %v", err)
	}
	for m := range hid {
		for w := range hid[m] {
			hid[m][w] += rate * g.hidden[m][w]
		}
	}
	for m := range out {
		for w := range out[m] {
			out[m][w] += rate * g.output[m][w]
		}
	}
	assertCloseWeights(t, hid, net.HiddenWeights())
	assertCloseWeights(t, out, net.OutputWeights())
}

// The weight changes must equal the negative gradient of
// E = 1/(2S) Σ_s Σ_k (t−o)².
func TestGradientsMatchFiniteDifferences(t *testing.T) {
	net := mustNetwork(t, 3, 2, 2, 4)
	set := model.TrainingSet{
		Inputs:  [][]float64{{0.1, 0.9, -0.3}, {-0.7, 0.2, 0.5}},
		Targets: [][]float64{{1, 0}, {0, 1}},
	}
	g, err := computeGradients(net, set)
	if err != nil {
		t.Fatalf("computeGradients: %v", err)
	}

	hid := net.HiddenWeights()
	out := net.OutputWeights()
	x := append(flatten(hid), flatten(out)...)
	probe := mustNetwork(t, 3, 2, 2, 0)

	loss := func(w []float64) float64 {
		h := unflatten(w[:len(x)-len(flatten(out))], len(hid))
		o := unflatten(w[len(x)-len(flatten(out)):], len(out))
		if err := probe.SetHiddenWeights(h); err != nil {
			t.Fatalf("SetHiddenWeights: %v", err)
		}
		if err := probe.SetOutputWeights(o); err != nil {
			t.Fatalf("SetOutputWeights: %v", err)
		}
		sum := 0.0
		for s, in := range set.Inputs {
			res, err := probe.Predict(in)
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			for k := range res {
				d := set.Targets[s][k] - res[k]
				sum += d * d
			}
		}
		return sum / (2 * float64(set.Len()))
	}

	numeric := fd.Gradient(nil, loss, x, &fd.Settings{Formula: fd.Central})
	analytic := append(flatten(g.hidden), flatten(g.output)...)
	for i := range numeric {
		if math.Abs(-numeric[i]-analytic[i]) > 1e-6 {
			t.Fatalf("weight %d: delta=%g, -dE/dw=%g", i, analytic[i], -numeric[i])
		}
	}
}

func flatten(m [][]float64) []float64 {
	var out []float64
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

func unflatten(v []float64, rows int) [][]float64 {
	cols := len(v) / rows
	m := make([][]float64, rows)
	for i := range m {
		m[i] = append([]float64(nil), v[i*cols:(i+1)*cols]...)
	}
	return m
}

func assertSameWeights(t *testing.T, want, got [][]float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("row count %d want %d", len(got), len(want))
	}
	for m := range want {
		if len(want[m]) != len(got[m]) {
			t.Fatalf("row %d has %d columns, want %d", m, len(got[m]), len(want[m]))
		}
		for w := range want[m] {
			if want[m][w] != got[m][w] {
				t.Fatalf("weight[%d][%d]=%v want %v", m, w, got[m][w], want[m][w])
			}
		}
	}
}

func assertCloseWeights(t *testing.T, want, got [][]float64) {
	t.Helper()
	for m := range want {
		for w := range want[m] {
			if math.Abs(want[m][w]-got[m][w]) > 1e-12 {
				t.Fatalf("weight[%d][%d]=%v want %v", m, w, got[m][w], want[m][w])
			}
		}
	}
}
