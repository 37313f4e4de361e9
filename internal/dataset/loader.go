package dataset

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"strokenet/internal/model"
)

// Options configures a dataset load.
type Options struct {
	// Root is a sample directory or a .tar bundle produced by WriteBundle.
	Root    string
	Classes int
	Points  int
	// Workers bounds the number of files parsed concurrently.
	Workers int
}

// Load parses every sample under opts.Root. Rows are returned in sorted path
// order regardless of worker count; each row holds 2·Points coordinates
// followed by Classes target values. The first failing file aborts the load.
func Load(ctx context.Context, opts Options) ([][]float64, error) {
	if opts.Points < 2 {
		return nil, fmt.Errorf("dataset: points must be >= 2 (got %d)", opts.Points)
	}
	if opts.Classes <= 0 {
		return nil, fmt.Errorf("dataset: classes must be > 0 (got %d)", opts.Classes)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.IsDir() && strings.HasSuffix(opts.Root, ".tar") {
		return loadBundle(ctx, opts)
	}

	paths, err := Discover(opts.Root)
	if err != nil {
		return nil, err
	}
	return loadFiles(ctx, paths, opts)
}

// LoadTrainingSet is Load followed by Split.
func LoadTrainingSet(ctx context.Context, opts Options) (model.TrainingSet, error) {
	rows, err := Load(ctx, opts)
	if err != nil {
		return model.TrainingSet{}, err
	}
	if len(rows) == 0 {
		return model.TrainingSet{}, fmt.Errorf("dataset: no samples under %s", opts.Root)
	}
	return Split(rows, opts.Classes)
}

// Split separates loaded rows into inputs and targets; the last classes
// values of each row are the target.
func Split(rows [][]float64, classes int) (model.TrainingSet, error) {
	set := model.TrainingSet{
		Inputs:  make([][]float64, len(rows)),
		Targets: make([][]float64, len(rows)),
	}
	for i, row := range rows {
		if len(row) <= classes {
			return model.TrainingSet{}, fmt.Errorf("%w: row %d has %d values for %d classes", model.ErrShapeMismatch, i, len(row), classes)
		}
		cut := len(row) - classes
		set.Inputs[i] = append([]float64(nil), row[:cut]...)
		set.Targets[i] = append([]float64(nil), row[cut:]...)
	}
	return set, nil
}

type loadJob struct {
	index int
	path  string
}

type loadResult struct {
	index int
	row   []float64
	err   error
}

func loadFiles(parent context.Context, paths []string, opts Options) ([][]float64, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan loadJob, opts.Workers)
	results := make(chan loadResult, opts.Workers)

	go func() {
		defer close(jobs)
		for i, path := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- loadJob{index: i, path: path}:
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				row, err := LoadExample(job.path, opts.Classes, opts.Points)
				select {
				case <-ctx.Done():
					return
				case results <- loadResult{index: job.index, row: row, err: err}:
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	rows := make([][]float64, len(paths))
	firstErr := -1
	var loadErr error
	for res := range results {
		if res.err == nil {
			rows[res.index] = res.row
			continue
		}
		if firstErr < 0 || res.index < firstErr {
			firstErr = res.index
			loadErr = res.err
		}
		cancel()
	}
	if loadErr != nil {
		return nil, loadErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
