package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config captures the knobs for training and recognition.
type Config struct {
	SamplesDir string  `yaml:"samples_dir"`
	Points     int     `yaml:"points"`
	Hidden     int     `yaml:"hidden"`
	Epochs     int     `yaml:"epochs"`
	Rate       int     `yaml:"rate"`
	Threshold  float64 `yaml:"threshold"`
	Seed       int64   `yaml:"seed"`
	LogEvery   int     `yaml:"log_every"`
	Workers    int     `yaml:"workers"`
}

// Overrides captures CLI supplied values. Zero values are ignored; Epochs
// uses -1 for "unset" because zero epochs is a valid request.
type Overrides struct {
	SamplesDir string
	Points     int
	Hidden     int
	Epochs     int
	Rate       int
	Threshold  float64
	Seed       int64
	LogEvery   int
	Workers    int
}

// Default returns the settings the drawing tool starts with.
func Default() *Config {
	return &Config{
		SamplesDir: "learningExamples",
		Points:     10,
		Hidden:     5,
		Epochs:     5000,
		Rate:       1,
		Threshold:  0.97,
		Seed:       42,
		LogEvery:   100,
		Workers:    1,
	}
}

// Load reads a Config from YAML on top of Default and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := parseYAML(f, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any set override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.SamplesDir != "" {
		c.SamplesDir = o.SamplesDir
	}
	if o.Points > 0 {
		c.Points = o.Points
	}
	if o.Hidden > 0 {
		c.Hidden = o.Hidden
	}
	if o.Epochs >= 0 {
		c.Epochs = o.Epochs
	}
	if o.Rate > 0 {
		c.Rate = o.Rate
	}
	if o.Threshold > 0 {
		c.Threshold = o.Threshold
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.SamplesDir == "" {
		return errors.New("samples_dir must be set")
	}
	if c.Points < 2 {
		return fmt.Errorf("points must be >= 2 (got %d)", c.Points)
	}
	if c.Hidden < 1 {
		return fmt.Errorf("hidden must be >= 1 (got %d)", c.Hidden)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("epochs must be >= 0 (got %d)", c.Epochs)
	}
	if c.Rate < 1 {
		return fmt.Errorf("rate must be >= 1 (got %d)", c.Rate)
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0, 1) (got %g)", c.Threshold)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 100
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return nil
}

func parseYAML(r io.Reader, cfg *Config) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("line %d: missing ':'", lineNo)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, "\"'")

		var err error
		switch key {
		case "samples_dir":
			cfg.SamplesDir = value
		case "points":
			cfg.Points, err = strconv.Atoi(value)
		case "hidden":
			cfg.Hidden, err = strconv.Atoi(value)
		case "epochs":
			cfg.Epochs, err = strconv.Atoi(value)
		case "rate":
			cfg.Rate, err = strconv.Atoi(value)
		case "threshold":
			cfg.Threshold, err = strconv.ParseFloat(value, 64)
		case "seed":
			cfg.Seed, err = strconv.ParseInt(value, 10, 64)
		case "log_every":
			cfg.LogEvery, err = strconv.Atoi(value)
		case "workers":
			cfg.Workers, err = strconv.Atoi(value)
		default:
			return fmt.Errorf("line %d: unknown key %s", lineNo, key)
		}
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", lineNo, key, err)
		}
	}
	return scanner.Err()
}
