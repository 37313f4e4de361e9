package dataset

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// Discover returns the paths of all regular files beneath root, sorted.
func Discover(root string) ([]string, error) {
	entries := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: discover samples: %w", ErrIO, err)
	}
	sort.Strings(entries)
	return entries, nil
}
