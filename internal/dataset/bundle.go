package dataset

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// WriteBundle writes every sample file under root into a tar stream, named
// by its slash-separated path relative to root. It returns the number of
// samples written.
func WriteBundle(root string, w io.Writer) (int, error) {
	paths, err := Discover(root)
	if err != nil {
		return 0, err
	}
	tw := tar.NewWriter(w)
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrIO, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("%w: read sample: %w", ErrIO, err)
		}
		hdr := &tar.Header{
			Name:     filepath.ToSlash(rel),
			Size:     int64(len(data)),
			Mode:     0o644,
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return 0, fmt.Errorf("%w: write header: %w", ErrIO, err)
		}
		if _, err := tw.Write(data); err != nil {
			return 0, fmt.Errorf("%w: write entry: %w", ErrIO, err)
		}
	}
	if err := tw.Close(); err != nil {
		return 0, fmt.Errorf("%w: close bundle: %w", ErrIO, err)
	}
	return len(paths), nil
}

type bundleEntry struct {
	name string
	data []byte
}

func loadBundle(ctx context.Context, opts Options) ([][]float64, error) {
	f, err := os.Open(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: open bundle: %w", ErrIO, err)
	}
	defer f.Close()

	tr := tar.NewReader(bufio.NewReader(f))
	var entries []bundleEntry
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read tar: %w", ErrIO, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrIO, hdr.Name, err)
		}
		entries = append(entries, bundleEntry{name: hdr.Name, data: data})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	rows := make([][]float64, 0, len(entries))
	for _, e := range entries {
		row, err := ParseSample(bytes.NewReader(e.data), opts.Classes, opts.Points)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.name, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
