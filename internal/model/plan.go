package model

import "path/filepath"

// PlanEntry is a single rename in a Plan.
type PlanEntry struct {
	// Source is the path of the file as discovered (SourceDir joined with
	// the file name).
	Source string `json:"source"`

	// NewName is the synthesized file name, without any directory.
	NewName string `json:"newName"`

	// Target is NewName resolved against the directory of Source.
	Target string `json:"target"`
}

// Plan is the ordered set of renames computed for one run. Entries are
// index-aligned with the sorted file list the plan was built from.
type Plan struct {
	Entries []PlanEntry `json:"entries"`
}

// NewPlan pairs sources with new names. The two slices must have the same
// length; a mismatch means the pipeline was wired incorrectly and is
// reported as a *LengthMismatchError.
func NewPlan(sources, newNames []string) (*Plan, error) {
	if len(sources) != len(newNames) {
		return nil, &LengthMismatchError{Sources: len(sources), Names: len(newNames)}
	}

	entries := make([]PlanEntry, len(sources))
	for i, src := range sources {
		entries[i] = PlanEntry{
			Source:  src,
			NewName: newNames[i],
			Target:  filepath.Join(filepath.Dir(src), newNames[i]),
		}
	}
	return &Plan{Entries: entries}, nil
}

// Len returns the number of entries in the plan. A nil plan is empty.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}
