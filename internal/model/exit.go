package model

import "fmt"

// ExitCode defines standard CLI exit codes. These codes allow scripts to
// programmatically determine the outcome of a run.
type ExitCode int

const (
	// ExitSuccess indicates the run completed successfully, including the
	// "no matching files" and dry-run cases.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred, such as
	// invalid flags or an invalid pattern.
	ExitGeneralError ExitCode = 1

	// ExitDirectoryNotFound indicates --dir does not exist.
	ExitDirectoryNotFound ExitCode = 2

	// ExitValidationFailed indicates the plan failed pre-flight validation.
	// Nothing was renamed.
	ExitValidationFailed ExitCode = 3

	// ExitRenameFailed indicates a filesystem rename failed mid-run.
	// Earlier entries may already have been renamed.
	ExitRenameFailed ExitCode = 4

	// ExitUserCancelled indicates the user declined the confirmation prompt.
	ExitUserCancelled ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
