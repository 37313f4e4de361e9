package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strokenet/internal/dataset"
)

var packCmd = &cobra.Command{
	Use:   "pack OUTPUT.tar",
	Short: "Bundle the sample directory into a tar archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	n, err := dataset.WriteBundle(cfg.SamplesDir, f)
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Packed %d samples into %s\n", n, args[0])
	return nil
}
