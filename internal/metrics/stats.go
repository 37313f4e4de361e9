package metrics

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Window accumulates timing and loss stats across multiple epochs.
type Window struct {
	samples  int
	compute  time.Duration
	epochs   int
	lastLoss float64
}

// Record adds one epoch over sampleCount samples to the window.
func (w *Window) Record(sampleCount int, computeTime time.Duration, loss float64) {
	w.samples += sampleCount
	w.compute += computeTime
	w.epochs++
	w.lastLoss = loss
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Epochs: w.epochs}
	if w.compute > 0 {
		snap.SamplesPerSec = float64(w.samples) / w.compute.Seconds()
	}
	if w.epochs > 0 {
		snap.AvgEpochMS = (w.compute.Seconds() * 1000) / float64(w.epochs)
	}
	snap.LastLoss = w.lastLoss

	w.samples = 0
	w.compute = 0
	w.epochs = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Epochs        int
	SamplesPerSec float64
	AvgEpochMS    float64
	LastLoss      float64
}

// MeanSquaredError averages (t−o)² over every entry of every row.
func MeanSquaredError(outputs, targets [][]float64) float64 {
	if len(outputs) == 0 {
		return 0
	}
	sum := 0.0
	count := 0
	for i := range outputs {
		d := floats.Distance(outputs[i], targets[i], 2)
		sum += d * d
		count += len(outputs[i])
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
