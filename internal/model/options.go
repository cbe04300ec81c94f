package model

import (
	"fmt"
	"strings"
)

// RenameOptions holds the validated rename configuration for one run.
//
// Values are produced by the config package from flags, environment
// variables and an optional preset file, and are treated as immutable
// once the pipeline starts.
type RenameOptions struct {
	// SourceDir is the directory whose direct children are scanned.
	// Subdirectories are never entered.
	SourceDir string `json:"dir"`

	// FilePattern is the shell-style glob matched against file names
	// (for example "*.jpg").
	FilePattern string `json:"pattern"`

	// SortByNumber enables numeric-aware ordering based on the last
	// digit run in each file name. When false, paths are ordered by
	// ordinal string comparison.
	SortByNumber bool `json:"sortnum"`

	// Prefix is prepended verbatim to every new name. Empty means no prefix.
	Prefix string `json:"prefix,omitempty"`

	// UseOriginalName includes the original base name (without extension)
	// in the new name.
	UseOriginalName bool `json:"origin"`

	// AddSequence appends the 1-based, zero-padded position of the file
	// in the sorted list.
	AddSequence bool `json:"suffix"`
}

// Validate checks the options for values the pipeline cannot work with.
// It returns an *InvalidOptionsError describing the first problem found.
func (o RenameOptions) Validate() error {
	if strings.TrimSpace(o.FilePattern) == "" {
		return &InvalidOptionsError{Field: "pattern", Reason: "a file pattern is required (e.g. \"*.jpg\")"}
	}
	if o.SourceDir == "" {
		return &InvalidOptionsError{Field: "dir", Reason: "source directory must not be empty"}
	}
	// A separator in the prefix would turn a rename into a move out of
	// (or below) the source directory.
	if strings.ContainsAny(o.Prefix, `/\`) {
		return &InvalidOptionsError{Field: "prefix", Reason: fmt.Sprintf("prefix %q must not contain a path separator", o.Prefix)}
	}
	return nil
}
