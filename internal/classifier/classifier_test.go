package classifier

import (
	"errors"
	"testing"

	"strokenet/internal/gesture"
	"strokenet/internal/model"
	"strokenet/internal/stroke"
)

func TestDecideFirstOverThreshold(t *testing.T) {
	cases := []struct {
		outputs []float64
		want    gesture.Class
	}{
		{[]float64{0.98, 0.10, 0.05, 0.02}, gesture.Alpha},
		{[]float64{0.5, 0.5, 0.5, 0.5}, gesture.Unknown},
		{[]float64{0.99, 0.99, 0, 0}, gesture.Alpha},
		{[]float64{0.1, 0.2, 0.3, 0.999}, gesture.Epsilon},
		{[]float64{0.1, 0.97, 0, 0}, gesture.Unknown},
	}
	for _, tc := range cases {
		if got := Decide(tc.outputs, DefaultThreshold); got != tc.want {
			t.Fatalf("Decide(%v)=%s want %s", tc.outputs, got, tc.want)
		}
	}
}

// constantNetwork ignores its inputs: hidden weights are zero, so every
// output is σ(bias).
func constantNetwork(t *testing.T, points int, biases []float64) *model.Network {
	t.Helper()
	net, err := model.NewNetwork(2*points, 2, len(biases), 1)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	hid := net.HiddenWeights()
	for m := range hid {
		for w := range hid[m] {
			hid[m][w] = 0
		}
	}
	out := make([][]float64, len(biases))
	for k, b := range biases {
		out[k] = []float64{0, 0, b}
	}
	if err := net.SetHiddenWeights(hid); err != nil {
		t.Fatalf("SetHiddenWeights: %v", err)
	}
	if err := net.SetOutputWeights(out); err != nil {
		t.Fatalf("SetOutputWeights: %v", err)
	}
	return net
}

func TestClassifyStroke(t *testing.T) {
	net := constantNetwork(t, 5, []float64{-3, 6, 6, -3})
	raw := []stroke.RawPoint{{X: 10, Y: 10}, {X: 20, Y: 25}, {X: 30, Y: 12}, {X: 45, Y: 40}, {X: 50, Y: 41}, {X: 60, Y: 70}}
	res, err := Classify(net, raw, 5, DefaultThreshold)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Class != gesture.Beta {
		t.Fatalf("expected BETA, got %s (outputs %v)", res.Class, res.Outputs)
	}
	if len(res.Outputs) != gesture.Count {
		t.Fatalf("expected %d outputs, got %d", gesture.Count, len(res.Outputs))
	}
}

func TestClassifyBelowThreshold(t *testing.T) {
	net := constantNetwork(t, 3, []float64{0, 0, 0, 0})
	res, err := Classify(net, []stroke.RawPoint{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 9, Y: 1}}, 3, DefaultThreshold)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Class != gesture.Unknown {
		t.Fatalf("expected Unknown, got %s", res.Class)
	}
}

func TestClassifyDegenerateStroke(t *testing.T) {
	net := constantNetwork(t, 3, []float64{9, 0, 0, 0})
	for _, raw := range [][]stroke.RawPoint{nil, {{X: 4, Y: 4}}} {
		res, err := Classify(net, raw, 3, DefaultThreshold)
		if err != nil {
			t.Fatalf("Classify(%v): %v", raw, err)
		}
		if res.Class != gesture.Unknown || res.Outputs != nil {
			t.Fatalf("Classify(%v)=%+v, want Unknown", raw, res)
		}
	}
}

func TestClassifyShapeMismatch(t *testing.T) {
	net := constantNetwork(t, 3, []float64{0, 0, 0, 0})
	_, err := Classify(net, []stroke.RawPoint{{X: 0, Y: 0}, {X: 1, Y: 1}}, 4, DefaultThreshold)
	if !errors.Is(err, model.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}
