package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"strokenet/internal/config"
)

var (
	cfgPath   string
	overrides = config.Overrides{Epochs: -1}
)

var rootCmd = &cobra.Command{
	Use:           "strokenet",
	Short:         "Collect, train and recognise pen gestures",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	log.SetFlags(0)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "Path to YAML config")
	flags.StringVar(&overrides.SamplesDir, "samples", "", "Sample directory or .tar bundle")
	flags.IntVar(&overrides.Points, "points", 0, "Representative points per stroke")
	flags.IntVar(&overrides.Hidden, "hidden", 0, "Hidden layer neurons")
	flags.IntVar(&overrides.Epochs, "epochs", -1, "Training epochs")
	flags.IntVar(&overrides.Rate, "rate", 0, "Learning rate multiplier")
	flags.Float64Var(&overrides.Threshold, "threshold", 0, "Recognition threshold")
	flags.Int64Var(&overrides.Seed, "seed", 0, "PRNG seed for weight initialisation")
	flags.IntVar(&overrides.LogEvery, "log-every", 0, "Log every N epochs")
	flags.IntVar(&overrides.Workers, "workers", 0, "Sample loader workers")
}

// loadConfig resolves the config file, if any, and the flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(overrides)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
