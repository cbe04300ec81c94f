// Package validate performs the read-only pre-flight checks on a rename
// plan. Every problem that can be detected is collected and reported
// together, so that a plan is either fully accepted or nothing is renamed.
package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/samber/lo"

	"github.com/shinji-kodama/bulkrename/internal/model"
)

// Stater is the read-only filesystem access the validator needs.
type Stater interface {
	Lstat(name string) (fs.FileInfo, error)
}

// SameFiler is an optional extension of Stater. When implemented it
// replaces os.SameFile for deciding whether two stat results describe the
// same file.
type SameFiler interface {
	SameFile(a, b fs.FileInfo) bool
}

type osStater struct{}

func (osStater) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }

// Validator checks plans against themselves and against the filesystem.
type Validator struct {
	fs Stater

	// foldCase makes duplicate detection case-insensitive, matching how
	// the filesystems of Windows and macOS compare names by default.
	foldCase bool
}

// New returns a Validator backed by the OS filesystem. Duplicate names are
// compared case-insensitively on windows and darwin.
func New() *Validator {
	return NewWithFS(osStater{}, caseInsensitivePlatform())
}

// NewWithFS returns a Validator using fsys for existence checks.
func NewWithFS(fsys Stater, foldCase bool) *Validator {
	return &Validator{fs: fsys, foldCase: foldCase}
}

// Validate pairs sources with names and checks the result.
//
// Checks, in order:
//  1. len(sources) == len(names); a mismatch returns a
//     *model.LengthMismatchError immediately.
//  2. No new name appears twice; all duplicates are reported in a single
//     *model.ConflictError.
//  3. No target already exists on disk, unless it is the entry's own
//     source: an identity rename, or a case-only rename where the target
//     name resolves to the source file itself (a case-insensitive
//     filesystem). A differently-cased file that is a separate file on a
//     case-sensitive filesystem is an occupied target. Each offender is
//     reported as a *model.TargetExistsError.
//
// Problems from checks 2 and 3 are returned together as a
// *model.ValidationError. The plan is returned even when validation fails
// so that callers can show what was rejected.
func (v *Validator) Validate(sources, names []string) (*model.Plan, error) {
	plan, err := model.NewPlan(sources, names)
	if err != nil {
		return nil, err
	}

	var problems []error
	if conflict := v.findDuplicates(plan); conflict != nil {
		problems = append(problems, conflict)
	}
	problems = append(problems, v.findExistingTargets(plan)...)

	if len(problems) > 0 {
		return plan, &model.ValidationError{Problems: problems}
	}
	return plan, nil
}

// findDuplicates groups entries by (normalised) new name and returns a
// ConflictError for every group with more than one member, in the order
// the names first appear in the plan.
func (v *Validator) findDuplicates(plan *model.Plan) *model.ConflictError {
	keys := lo.Map(plan.Entries, func(e model.PlanEntry, _ int) string {
		return v.normalize(e.NewName)
	})
	groups := lo.GroupBy(lo.Range(len(keys)), func(i int) string {
		return keys[i]
	})

	var dups []model.DuplicateName
	for _, key := range lo.Uniq(keys) {
		idx := groups[key]
		if len(idx) < 2 {
			continue
		}
		dups = append(dups, model.DuplicateName{
			Name: plan.Entries[idx[0]].NewName,
			Sources: lo.Map(idx, func(i int, _ int) string {
				return plan.Entries[i].Source
			}),
		})
	}

	if len(dups) == 0 {
		return nil
	}
	return &model.ConflictError{Duplicates: dups}
}

// findExistingTargets reports every entry whose target is already taken
// by something other than its own source.
func (v *Validator) findExistingTargets(plan *model.Plan) []error {
	var problems []error
	for _, e := range plan.Entries {
		target, source := filepath.Clean(e.Target), filepath.Clean(e.Source)
		if target == source {
			continue
		}

		info, err := v.fs.Lstat(e.Target)
		switch {
		case err == nil:
			if strings.EqualFold(target, source) {
				self, err := v.isSource(info, e.Source)
				if err != nil {
					problems = append(problems, err)
					continue
				}
				if self {
					// Case-only rename on a case-insensitive filesystem.
					continue
				}
			}
			problems = append(problems, &model.TargetExistsError{Source: e.Source, Target: e.Target})
		case errors.Is(err, fs.ErrNotExist):
			// Free target.
		default:
			problems = append(problems, fmt.Errorf("check target %s: %w", e.Target, err))
		}
	}
	return problems
}

// isSource reports whether target, the stat result of a target path,
// describes the file at source.
func (v *Validator) isSource(target fs.FileInfo, source string) (bool, error) {
	info, err := v.fs.Lstat(source)
	if err != nil {
		return false, fmt.Errorf("check source %s: %w", source, err)
	}
	if sf, ok := v.fs.(SameFiler); ok {
		return sf.SameFile(target, info), nil
	}
	return os.SameFile(target, info), nil
}

func (v *Validator) normalize(name string) string {
	if v.foldCase {
		return strings.ToLower(name)
	}
	return name
}

func caseInsensitivePlatform() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}
