package model

import "errors"

// OutcomeKind identifies how a rename run ended.
type OutcomeKind string

const (
	// OutcomeRenamed indicates every entry of the plan was renamed.
	OutcomeRenamed OutcomeKind = "renamed"

	// OutcomeNothingToDo indicates the pattern matched no files.
	OutcomeNothingToDo OutcomeKind = "nothing-to-do"

	// OutcomePlanned indicates a dry run: the plan was built and validated
	// but not executed.
	OutcomePlanned OutcomeKind = "planned"

	// OutcomeCancelled indicates the user declined the confirmation or
	// interrupted the run before execution started.
	OutcomeCancelled OutcomeKind = "cancelled"

	// OutcomeConfirmFailed indicates the confirmation answer could not be
	// read. Nothing was renamed.
	OutcomeConfirmFailed OutcomeKind = "confirm-failed"

	// OutcomeSetupFailed indicates the run could not build a file list
	// (bad options, missing directory, invalid pattern).
	OutcomeSetupFailed OutcomeKind = "setup-failed"

	// OutcomeValidationFailed indicates the plan was rejected before any
	// file was touched.
	OutcomeValidationFailed OutcomeKind = "validation-failed"

	// OutcomeExecutionFailed indicates a rename failed after execution
	// started. Completed entries stay renamed.
	OutcomeExecutionFailed OutcomeKind = "execution-failed"
)

// String returns the string representation of OutcomeKind.
func (k OutcomeKind) String() string {
	return string(k)
}

// Outcome is the result of one pipeline run. The CLI maps it to a process
// exit code and a message; the pipeline itself never exits.
type Outcome struct {
	Kind OutcomeKind

	// Plan is the validated plan, or nil when the run ended before one
	// could be built.
	Plan *Plan

	// Completed is the number of entries renamed on disk.
	Completed int

	// Err carries the details: a *NoMatchError for OutcomeNothingToDo, the
	// failure for the failed kinds, nil otherwise.
	Err error
}

// Failed reports whether the outcome should produce a non-zero exit.
func (o Outcome) Failed() bool {
	return o.ExitCode() != ExitSuccess
}

// ExitCode maps the outcome to the process exit code.
func (o Outcome) ExitCode() ExitCode {
	switch o.Kind {
	case OutcomeRenamed, OutcomeNothingToDo, OutcomePlanned:
		return ExitSuccess
	case OutcomeCancelled:
		return ExitUserCancelled
	case OutcomeValidationFailed:
		return ExitValidationFailed
	case OutcomeExecutionFailed:
		return ExitRenameFailed
	case OutcomeConfirmFailed:
		return ExitGeneralError
	case OutcomeSetupFailed:
		var dirErr *DirectoryNotFoundError
		if errors.As(o.Err, &dirErr) {
			return ExitDirectoryNotFound
		}
		return ExitGeneralError
	default:
		return ExitGeneralError
	}
}
