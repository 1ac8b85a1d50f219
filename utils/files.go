package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFiles returns files under root matching any of the doublestar patterns,
// relative to root, sorted and without duplicates.
func FindFiles(root string, patterns ...string) ([]string, error) {
	fsys := os.DirFS(root)
	var found []string
	for _, p := range patterns {
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s in %s: %w", p, root, err)
		}
		for _, m := range matches {
			found = append(found, filepath.FromSlash(m))
		}
	}
	slices.Sort(found)
	return slices.Compact(found), nil
}
