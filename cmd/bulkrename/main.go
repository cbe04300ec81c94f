// Package main is the entry point for the bulkrename CLI.
//
// The binary renames sets of files matched by a glob pattern. It delegates
// all functionality to the internal/cli package, which defines the cobra
// command.
//
// Build-time variables (version, commit, date) are injected via ldflags,
// e.g. -ldflags "-X main.version=1.2.0". During development, they default
// to "dev", "none", and "unknown" respectively.
package main

import (
	"github.com/shinji-kodama/bulkrename/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
