package rename

import (
	"context"
	"io/fs"

	"github.com/pkg/errors"

	"github.com/shinji-kodama/bulkrename/internal/model"
)

// Observer is notified after each entry has been renamed, as it happens.
type Observer interface {
	EntryRenamed(index int, entry model.PlanEntry)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(index int, entry model.PlanEntry)

// EntryRenamed calls f(index, entry).
func (f ObserverFunc) EntryRenamed(index int, entry model.PlanEntry) { f(index, entry) }

// StartObserver is an optional extension of Observer. Execute calls
// ExecutionStarted once, with the number of entries, before the first
// rename.
type StartObserver interface {
	ExecutionStarted(total int)
}

// Executor performs two-phase renames.
type Executor struct {
	fs     FileSystem
	tokens TokenSource
}

// Option configures an Executor.
type Option func(*Executor)

// WithFileSystem replaces the OS filesystem.
func WithFileSystem(fsys FileSystem) Option {
	return func(e *Executor) { e.fs = fsys }
}

// WithTokenSource replaces the shortid token generator used for temporary
// names.
func WithTokenSource(ts TokenSource) Option {
	return func(e *Executor) { e.tokens = ts }
}

// NewExecutor returns an Executor that works on the OS filesystem unless
// configured otherwise.
func NewExecutor(opts ...Option) (*Executor, error) {
	e := &Executor{fs: OSFileSystem{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.tokens == nil {
		ts, err := newTokenSource()
		if err != nil {
			return nil, err
		}
		e.tokens = ts
	}
	return e, nil
}

// Execute renames the entries of plan in order and returns how many were
// completed.
//
// On the first failure it returns a *model.RenameExecutionError naming the
// entry and wrapping the filesystem error; the remaining entries are not
// attempted and completed ones are not undone. A cancelled ctx is checked
// before each entry and reported the same way. obs may be nil.
func (e *Executor) Execute(ctx context.Context, plan *model.Plan, obs Observer) (int, error) {
	total := plan.Len()
	if total == 0 {
		return 0, nil
	}
	if starter, ok := obs.(StartObserver); ok {
		starter.ExecutionStarted(total)
	}

	for i, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return i, &model.RenameExecutionError{
				Index: i, Total: total, Source: entry.Source, Target: entry.Target,
				Completed: i, Err: err,
			}
		}

		leftAt, err := e.moveEntry(entry)
		if err != nil {
			return i, &model.RenameExecutionError{
				Index: i, Total: total, Source: entry.Source, Target: entry.Target,
				TempPath: leftAt, Completed: i, Err: err,
			}
		}

		if obs != nil {
			obs.EntryRenamed(i, entry)
		}
	}
	return total, nil
}

// moveEntry renames one entry via a temporary name. When the second phase
// fails, the file is moved back to its source name; if that also fails,
// the temporary path is returned so the caller can report where the file
// was left.
func (e *Executor) moveEntry(entry model.PlanEntry) (string, error) {
	tmp, err := e.tempPath(entry.Source)
	if err != nil {
		return "", err
	}

	if err := e.fs.Rename(entry.Source, tmp); err != nil {
		return "", errors.Wrap(err, "move to temporary name")
	}

	// The target was free during validation; another process may have
	// created it since, and os.Rename would silently replace it.
	if err := e.ensureFree(entry.Target); err != nil {
		return e.restore(tmp, entry.Source, err)
	}

	if err := e.fs.Rename(tmp, entry.Target); err != nil {
		return e.restore(tmp, entry.Source, errors.Wrap(err, "move to final name"))
	}
	return "", nil
}

func (e *Executor) ensureFree(target string) error {
	_, err := e.fs.Lstat(target)
	switch {
	case err == nil:
		return errors.Wrapf(fs.ErrExist, "target %s appeared after validation", target)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return errors.Wrapf(err, "check target %s", target)
	}
}

// restore moves tmp back to source and returns cause. The returned path is
// non-empty when the file could not be moved back.
func (e *Executor) restore(tmp, source string, cause error) (string, error) {
	if err := e.fs.Rename(tmp, source); err != nil {
		return tmp, cause
	}
	return "", cause
}
