package stroke

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadRaw parses a captured stroke: one "x y" (or "x,y") integer pair per
// line, in capture order. Blank lines and lines starting with # are skipped.
func ReadRaw(r io.Reader) ([]RawPoint, error) {
	var points []RawPoint
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 2 {
			return nil, fmt.Errorf("stroke: line %d: want 2 coordinates, got %d", lineNo, len(fields))
		}
		x, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("stroke: line %d: %w", lineNo, err)
		}
		y, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("stroke: line %d: %w", lineNo, err)
		}
		points = append(points, RawPoint{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}
