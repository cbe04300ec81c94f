package model

import (
	"fmt"
	"strings"
)

// DirectoryNotFoundError is returned when the source directory does not
// exist or is not a directory. No file is touched when it occurs.
type DirectoryNotFoundError struct {
	Dir string
	Err error
}

func (e *DirectoryNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source directory %q not found: %v", e.Dir, e.Err)
	}
	return fmt.Sprintf("source directory %q not found", e.Dir)
}

func (e *DirectoryNotFoundError) Unwrap() error { return e.Err }

// InvalidPatternError is returned when the file pattern is not a valid glob
// or tries to reach outside the source directory.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid file pattern %q: %s", e.Pattern, e.Reason)
}

// InvalidOptionsError reports a RenameOptions field the pipeline cannot use.
type InvalidOptionsError struct {
	Field  string
	Reason string
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("invalid option --%s: %s", e.Field, e.Reason)
}

// NoMatchError describes a pattern that matched no files. It is not a
// failure: the run ends with OutcomeNothingToDo and exit code 0.
type NoMatchError struct {
	Dir     string
	Pattern string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no files matching %q in %s", e.Pattern, e.Dir)
}

// DuplicateName is one synthesized name that more than one source maps to.
type DuplicateName struct {
	Name    string   `json:"name"`
	Sources []string `json:"sources"`
}

// ConflictError lists every name produced more than once within a plan,
// together with all sources that produced it.
type ConflictError struct {
	Duplicates []DuplicateName
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Duplicates))
	for _, d := range e.Duplicates {
		parts = append(parts, fmt.Sprintf("%q <- %s", d.Name, strings.Join(d.Sources, ", ")))
	}
	return "duplicate target names: " + strings.Join(parts, "; ")
}

// TargetExistsError is returned when a target path is already occupied by
// a file other than the entry's own source.
type TargetExistsError struct {
	Source string
	Target string
}

func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("target %s already exists (renaming %s)", e.Target, e.Source)
}

// LengthMismatchError signals that the source list and the list of new
// names have diverged. It indicates a defect in the pipeline, not bad input.
type LengthMismatchError struct {
	Sources int
	Names   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("internal error: %d source files but %d new names", e.Sources, e.Names)
}

// ValidationError aggregates every problem found while validating a plan.
// It unwraps to the individual problems so callers can use errors.As.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "plan validation failed: " + e.Problems[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "plan validation failed with %d problems:", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error { return e.Problems }

// RenameExecutionError reports the entry on which execution stopped.
// Entries before Index were renamed and stay renamed; entries after it
// were not attempted.
type RenameExecutionError struct {
	// Index is the 0-based position of the failing entry in the plan.
	Index int
	// Total is the number of entries in the plan.
	Total  int
	Source string
	Target string
	// TempPath is set when the file could not be moved back from its
	// temporary name and is left there.
	TempPath string
	// Completed is the number of entries renamed before the failure.
	Completed int
	Err       error
}

func (e *RenameExecutionError) Error() string {
	msg := fmt.Sprintf("rename %d of %d failed: [%s] -> [%s]: %v", e.Index+1, e.Total, e.Source, e.Target, e.Err)
	if e.TempPath != "" {
		msg += fmt.Sprintf(" (file left at %s)", e.TempPath)
	}
	return msg
}

func (e *RenameExecutionError) Unwrap() error { return e.Err }
