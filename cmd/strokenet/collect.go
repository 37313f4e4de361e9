package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"strokenet/internal/dataset"
	"strokenet/internal/gesture"
	"strokenet/internal/stroke"
)

var collectCmd = &cobra.Command{
	Use:       "collect CLASS STROKE...",
	Short:     "Normalise raw stroke files and store them as samples of CLASS",
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{"ALPHA", "BETA", "GAMMA", "EPSILON"},
	RunE:      runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	class, err := gesture.Parse(args[0])
	if err != nil {
		return err
	}
	for _, path := range args[1:] {
		raw, err := readStroke(path)
		if err != nil {
			return err
		}
		points, err := stroke.Normalise(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		saved, err := dataset.WriteSample(cfg.SamplesDir, class, points, time.Now())
		if err != nil {
			return err
		}
		fmt.Println("Saved", class, "sample:", saved)
	}
	return nil
}
