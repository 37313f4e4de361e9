package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/xid"

	"strokenet/internal/gesture"
	"strokenet/internal/stroke"
)

var (
	// ErrInvalidSample reports a malformed sample file.
	ErrInvalidSample = errors.New("dataset: invalid sample")
	// ErrIO reports a failed filesystem operation.
	ErrIO = errors.New("dataset: i/o failure")
)

// FileNameLayout is the timestamp layout of collected sample files
// (yyyy_MM_dd_hh_mm_ss with a 12-hour clock).
const FileNameLayout = "2006_01_02_03_04_05"

// ParseSample reads a sample in the one-number-per-line format: x and y of
// each stored point, then classes target digits. The stored stroke is
// resampled to points representative points. The result holds 2·points
// coordinates followed by the classes target values.
func ParseSample(r io.Reader, classes, points int) ([]float64, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	numCoords := len(lines) - classes
	if numCoords < 0 {
		return nil, fmt.Errorf("%w: %d lines, need at least %d target lines", ErrInvalidSample, len(lines), classes)
	}
	if numCoords%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of coordinate lines (%d)", ErrInvalidSample, numCoords)
	}

	stored := make([]stroke.Point, 0, numCoords/2)
	for i := 0; i < numCoords; i += 2 {
		x, err := strconv.ParseFloat(lines[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidSample, i+1, err)
		}
		y, err := strconv.ParseFloat(lines[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidSample, i+2, err)
		}
		stored = append(stored, stroke.Point{X: x, Y: y})
	}

	rep, err := stroke.Resample(stored, points)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSample, err)
	}

	example := make([]float64, 0, 2*points+classes)
	example = append(example, stroke.Flatten(rep)...)
	ones := 0
	for j, line := range lines[numCoords:] {
		switch line {
		case "0":
			example = append(example, 0)
		case "1":
			example = append(example, 1)
			ones++
		default:
			return nil, fmt.Errorf("%w: line %d: target %q is not 0 or 1", ErrInvalidSample, numCoords+j+1, line)
		}
	}
	if ones != 1 {
		return nil, fmt.Errorf("%w: target is not one-hot", ErrInvalidSample)
	}
	return example, nil
}

// LoadExample parses the sample file at path.
func LoadExample(path string, classes, points int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sample: %w", ErrIO, err)
	}
	defer f.Close()

	example, err := ParseSample(bufio.NewReader(f), classes, points)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return example, nil
}

// EncodeSample writes points and the class target in the sample format.
func EncodeSample(w io.Writer, points []stroke.Point, class gesture.Class) error {
	if !class.Valid() {
		return fmt.Errorf("dataset: cannot encode class %d", class)
	}
	bw := bufio.NewWriter(w)
	for _, p := range points {
		fmt.Fprintf(bw, "%s\n%s\n", formatCoord(p.X), formatCoord(p.Y))
	}
	for _, d := range class.Digits() {
		fmt.Fprintf(bw, "%c\n", d)
	}
	return bw.Flush()
}

// WriteSample stores points as a new sample of class under root, in
// root/<CLASS>/<timestamp>. A random suffix is added if the name is taken.
func WriteSample(root string, class gesture.Class, points []stroke.Point, now time.Time) (string, error) {
	dir := filepath.Join(root, class.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create class dir: %w", ErrIO, err)
	}
	name := now.Format(FileNameLayout)
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		path = filepath.Join(dir, name+"_"+xid.New().String())
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("%w: create sample: %w", ErrIO, err)
	}
	if err := EncodeSample(f, points, class); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: write sample: %w", ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: close sample: %w", ErrIO, err)
	}
	return path, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read sample: %w", ErrIO, err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
