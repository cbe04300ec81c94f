// Package naming synthesizes new file names for a sorted list of files.
//
// A name is assembled from an optional literal prefix, the optional
// original base name and an optional zero-padded sequence number, followed
// by the original extension. When the scheme contributes nothing, the
// original file name is kept, so every file always receives a non-empty,
// deterministic name.
package naming

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Scheme describes how new names are built.
type Scheme struct {
	// Prefix is prepended verbatim when non-empty.
	Prefix string

	// UseOriginalName appends the source base name without extension.
	UseOriginalName bool

	// AddSequence appends the 1-based position, zero-padded to
	// SequenceWidth of the file count.
	AddSequence bool
}

// Synthesize returns one new name per entry of sorted, in the same order.
// Positions are assigned after sorting and start at 1. The sequence width
// is computed once from len(sorted).
//
// Only the file name part of each path is used; directories are ignored.
func Synthesize(sorted []string, scheme Scheme) []string {
	width := SequenceWidth(len(sorted))
	names := make([]string, len(sorted))

	for i, path := range sorted {
		names[i] = buildName(filepath.Base(path), i+1, width, scheme)
	}
	return names
}

// SequenceWidth returns the number of decimal digits in count, the width
// every sequence number of a plan with count entries is padded to.
// A count of 0 or less yields 1.
func SequenceWidth(count int) int {
	if count <= 0 {
		return 1
	}
	return len(strconv.Itoa(count))
}

// buildName assembles the new name for a single file.
func buildName(fileName string, position, width int, scheme Scheme) string {
	ext := filepath.Ext(fileName)

	var b strings.Builder
	if scheme.Prefix != "" {
		b.WriteString(scheme.Prefix)
	}
	if scheme.UseOriginalName {
		b.WriteString(strings.TrimSuffix(fileName, ext))
	}
	if scheme.AddSequence {
		fmt.Fprintf(&b, "%0*d", width, position)
	}

	// Nothing was contributed (all options off, or an empty base name with
	// only --origin): keep the file name as it is.
	if b.Len() == 0 {
		return fileName
	}
	b.WriteString(ext)
	return b.String()
}
