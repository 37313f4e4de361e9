package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"strokenet/internal/dataset"
	"strokenet/internal/gesture"
	"strokenet/internal/metrics"
	"strokenet/internal/model"
)

const defaultLogEvery = 100

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	SamplesDir string
	Points     int
	Hidden     int
	Epochs     int
	Rate       int
	Seed       int64
	LogEvery   int
	Workers    int
}

// FitConfig controls a single Fit call.
type FitConfig struct {
	Epochs   int
	Rate     int
	LogEvery int
}

// Run loads the samples under cfg.SamplesDir, builds a fresh network and
// trains it. On cancellation the partially trained network is returned
// together with the context error.
func Run(ctx context.Context, cfg RunConfig) (*model.Network, error) {
	if cfg.Points < 2 {
		return nil, fmt.Errorf("trainer: points must be >= 2 (got %d)", cfg.Points)
	}
	if cfg.Hidden < 1 {
		return nil, fmt.Errorf("trainer: hidden must be >= 1 (got %d)", cfg.Hidden)
	}

	start := time.Now()
	set, err := dataset.LoadTrainingSet(ctx, dataset.Options{
		Root:    cfg.SamplesDir,
		Classes: gesture.Count,
		Points:  cfg.Points,
		Workers: cfg.Workers,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("root=%s samples=%d load_ms=%.2f", cfg.SamplesDir, set.Len(), time.Since(start).Seconds()*1000)

	net, err := model.NewNetwork(2*cfg.Points, cfg.Hidden, gesture.Count, cfg.Seed)
	if err != nil {
		return nil, err
	}
	err = Fit(ctx, net, set, FitConfig{
		Epochs:   cfg.Epochs,
		Rate:     cfg.Rate,
		LogEvery: cfg.LogEvery,
	})
	return net, err
}

// Fit trains net epoch by epoch, logging the loss every cfg.LogEvery epochs.
// The context is checked between epochs only.
func Fit(ctx context.Context, net *model.Network, set model.TrainingSet, cfg FitConfig) error {
	if cfg.Epochs < 0 {
		return fmt.Errorf("trainer: epochs must be >= 0 (got %d)", cfg.Epochs)
	}
	if net == nil {
		return errors.New("trainer: nil network")
	}
	if err := set.Validate(net.Inputs(), net.Outputs()); err != nil {
		return err
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = defaultLogEvery
	}

	var window metrics.Window
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		startCompute := time.Now()
		loss, err := Epoch(net, set, cfg.Rate)
		if err != nil {
			return err
		}
		window.Record(set.Len(), time.Since(startCompute), loss)

		if epoch%cfg.LogEvery == 0 || epoch == cfg.Epochs {
			snap := window.Snapshot()
			log.Printf("epoch=%d samples_per_sec=%.1f epoch_ms=%.3f loss=%.6f",
				epoch,
				snap.SamplesPerSec,
				snap.AvgEpochMS,
				snap.LastLoss,
			)
		}
	}
	return nil
}
