package utils

import (
	"fmt"
	"io"
)

// MergeDependencies merges classified declarations with records extracted
// from resolved artifacts
// - Keeps declared records in order
// - Adds resolved ones not already present
// - Deduplicates based on Key
func MergeDependencies(declared []SquareDependency, resolved []SquareDependency) []SquareDependency {
	merged := []SquareDependency{}
	seen := make(map[string]bool)

	for _, d := range declared {
		if seen[d.Key()] {
			continue
		}
		merged = append(merged, d)
		seen[d.Key()] = true
	}

	for _, r := range resolved {
		if !seen[r.Key()] {
			merged = append(merged, r)
			seen[r.Key()] = true
		}
	}

	return merged
}

// PrintDependencies writes one line per record, for debugging
func PrintDependencies(w io.Writer, deps []SquareDependency) {
	for _, d := range deps {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
