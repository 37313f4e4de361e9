package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"strokenet/internal/classifier"
	"strokenet/internal/stroke"
)

var classifyCmd = &cobra.Command{
	Use:   "classify STROKE...",
	Short: "Train on the collected samples, then recognise raw stroke files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	strokes := make([][]stroke.RawPoint, len(args))
	for i, path := range args {
		if strokes[i], err = readStroke(path); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	net, err := trainNetwork(ctx, cfg)
	if err != nil {
		return err
	}
	for i, raw := range strokes {
		res, err := classifier.Classify(net, raw, cfg.Points, cfg.Threshold)
		if err != nil {
			return fmt.Errorf("%s: %w", args[i], err)
		}
		fmt.Printf("%s\t%s\t%.4f\n", args[i], res.Class, res.Outputs)
	}
	return nil
}

func readStroke(path string) ([]stroke.RawPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	raw, err := stroke.ReadRaw(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}
