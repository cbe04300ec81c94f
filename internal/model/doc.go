// Package model defines the domain types and value objects for the
// bulkrename CLI.
//
// This package contains pure data structures with no external dependencies.
// RenameOptions, Plan and PlanEntry are transient values built and consumed
// within a single run; nothing is persisted between runs.
//
// The package also defines the error taxonomy of the rename pipeline, the
// Outcome variants a run can end in, exit codes (ExitCode) and a custom
// error type (CLIError) that carries exit codes for proper OS process exit
// handling.
package model
