// Package pipeline orchestrates one rename run: discovery, ordering, name
// synthesis, validation, review, confirmation and execution.
//
// Run never exits the process and never panics on user input. Every way a
// run can end is reported as a model.Outcome, which the CLI maps to a
// message and an exit code.
package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/shinji-kodama/bulkrename/internal/discovery"
	"github.com/shinji-kodama/bulkrename/internal/model"
	"github.com/shinji-kodama/bulkrename/internal/naming"
	"github.com/shinji-kodama/bulkrename/internal/rename"
	"github.com/shinji-kodama/bulkrename/internal/review"
	"github.com/shinji-kodama/bulkrename/internal/validate"
)

// Runner holds the collaborators of a run. Validator, Executor and
// Confirmer are required; the rest may be left zero.
type Runner struct {
	Validator *validate.Validator
	Executor  *rename.Executor
	Confirmer review.Confirmer

	// Review receives the printed plan. Nil discards it.
	Review io.Writer

	// Observer is notified of every completed rename.
	Observer rename.Observer

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger

	// DryRun stops after the plan has been validated and printed.
	DryRun bool
}

// Run executes the pipeline for opts and reports how it ended.
//
// Steps:
//  1. Check opts.
//  2. List matching files; none is a clean "nothing to do".
//  3. Sort them and synthesize new names.
//  4. Validate the plan; all problems are reported before any mutation.
//  5. Print the plan, stop here on a dry run.
//  6. Ask for confirmation. An interrupted prompt is a cancellation; an
//     unreadable answer is a failure.
//  7. Execute, stopping at the first failure.
func (r *Runner) Run(ctx context.Context, opts model.RenameOptions) model.Outcome {
	logger := r.logger()

	// Step 1: Reject options the pipeline cannot work with.
	if err := opts.Validate(); err != nil {
		return model.Outcome{Kind: model.OutcomeSetupFailed, Err: err}
	}

	// Step 2: Discover matching files.
	files, err := discovery.List(opts.SourceDir, opts.FilePattern)
	if err != nil {
		return model.Outcome{Kind: model.OutcomeSetupFailed, Err: err}
	}
	logger.Debug("listed files", "dir", opts.SourceDir, "pattern", opts.FilePattern, "count", len(files))

	if len(files) == 0 {
		return model.Outcome{
			Kind: model.OutcomeNothingToDo,
			Err:  &model.NoMatchError{Dir: opts.SourceDir, Pattern: opts.FilePattern},
		}
	}

	// Step 3: Order the files and build their new names.
	sorted := discovery.Sort(files, opts.SortByNumber)
	names := naming.Synthesize(sorted, naming.Scheme{
		Prefix:          opts.Prefix,
		UseOriginalName: opts.UseOriginalName,
		AddSequence:     opts.AddSequence,
	})
	logger.Debug("synthesized names", "numeric", opts.SortByNumber, "width", naming.SequenceWidth(len(sorted)))

	// Step 4: Validate before touching anything.
	plan, err := r.Validator.Validate(sorted, names)
	if err != nil {
		var lenErr *model.LengthMismatchError
		if errors.As(err, &lenErr) {
			logger.Error("pipeline produced mismatched lists", "sources", lenErr.Sources, "names", lenErr.Names)
		}
		return model.Outcome{Kind: model.OutcomeValidationFailed, Plan: plan, Err: err}
	}

	// Step 5: Show the plan.
	review.PrintPlan(r.reviewWriter(), plan)
	if r.DryRun {
		logger.Debug("dry run, not renaming", "entries", plan.Len())
		return model.Outcome{Kind: model.OutcomePlanned, Plan: plan}
	}

	// Step 6: Gate on the operator's answer.
	ok, err := r.Confirmer.Confirm(ctx, plan)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return model.Outcome{Kind: model.OutcomeCancelled, Plan: plan, Err: err}
		}
		logger.Debug("failed to read confirmation", "err", err)
		return model.Outcome{Kind: model.OutcomeConfirmFailed, Plan: plan, Err: err}
	}
	if !ok {
		return model.Outcome{Kind: model.OutcomeCancelled, Plan: plan}
	}

	// Step 7: Rename.
	done, err := r.Executor.Execute(ctx, plan, r.Observer)
	if err != nil {
		return model.Outcome{Kind: model.OutcomeExecutionFailed, Plan: plan, Completed: done, Err: err}
	}
	logger.Debug("renamed all entries", "count", done)
	return model.Outcome{Kind: model.OutcomeRenamed, Plan: plan, Completed: done}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.New(io.Discard)
}

func (r *Runner) reviewWriter() io.Writer {
	if r.Review != nil {
		return r.Review
	}
	return io.Discard
}
