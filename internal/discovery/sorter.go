package discovery

import (
	"path/filepath"
	"sort"
	"strings"
)

// Sort returns a sorted copy of paths. The input slice is not modified.
//
// In lexicographic mode (numeric == false) paths are ordered by ordinal
// string comparison. In numeric mode they are ordered by the NumericKey of
// the file name without extension, then by the full path, so files with
// equal keys, and files without any number, still have a stable order.
func Sort(paths []string, numeric bool) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)

	if !numeric {
		sort.Strings(sorted)
		return sorted
	}

	// Compute each key once rather than on every comparison.
	keys := make(map[string]SortKey, len(sorted))
	for _, p := range sorted {
		keys[p] = NumericKey(stem(p))
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if c := keys[sorted[i]].Compare(keys[sorted[j]]); c != 0 {
			return c < 0
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

// stem returns the file name of path without directory and extension.
func stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
