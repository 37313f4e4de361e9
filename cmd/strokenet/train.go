package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"strokenet/internal/classifier"
	"strokenet/internal/config"
	"strokenet/internal/dataset"
	"strokenet/internal/gesture"
	"strokenet/internal/model"
	"strokenet/internal/trainer"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a network on the collected samples and report its accuracy",
	Args:  cobra.NoArgs,
	RunE:  runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	net, err := trainNetwork(ctx, cfg)
	if err != nil {
		return err
	}

	set, err := dataset.LoadTrainingSet(ctx, datasetOptions(cfg))
	if err != nil {
		return err
	}
	correct := 0
	for i, x := range set.Inputs {
		out, err := net.Predict(x)
		if err != nil {
			return err
		}
		want, err := gesture.FromOneHot(set.Targets[i])
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		if classifier.Decide(out, cfg.Threshold) == want {
			correct++
		}
	}
	fmt.Printf("recognised %d/%d training samples (threshold %.2f)\n", correct, set.Len(), cfg.Threshold)
	return nil
}

// trainNetwork trains a fresh network from cfg. Networks are not persisted,
// so every command that needs one trains it.
func trainNetwork(ctx context.Context, cfg *config.Config) (*model.Network, error) {
	log.Printf("points=%d hidden=%d epochs=%d rate=%d seed=%d", cfg.Points, cfg.Hidden, cfg.Epochs, cfg.Rate, cfg.Seed)
	net, err := trainer.Run(ctx, trainer.RunConfig{
		SamplesDir: cfg.SamplesDir,
		Points:     cfg.Points,
		Hidden:     cfg.Hidden,
		Epochs:     cfg.Epochs,
		Rate:       cfg.Rate,
		Seed:       cfg.Seed,
		LogEvery:   cfg.LogEvery,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}
	return net, nil
}

func datasetOptions(cfg *config.Config) dataset.Options {
	return dataset.Options{
		Root:    cfg.SamplesDir,
		Classes: gesture.Count,
		Points:  cfg.Points,
		Workers: cfg.Workers,
	}
}
