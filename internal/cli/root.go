// Package cli implements the cobra-based command line of bulkrename.
//
// bulkrename is a single command: it lists the files of a directory that
// match a glob pattern, computes new names for them, shows the plan and
// renames the files once the operator confirms. This file defines the
// command, its global flags and the error/exit-code handling. The rename
// flow itself lives in rename.go and the result formatting in output.go.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/bulkrename/internal/config"
	"github.com/shinji-kodama/bulkrename/internal/model"
)

// Global flag variables. They are bound to persistent flags on the root
// command each time NewRootCommand is called.
var (
	// jsonOutput controls whether results are formatted as JSON.
	// When true, stdout carries a single JSON document and everything
	// meant for a human (plan review, prompt) moves to stderr.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool
)

// logger is the diagnostic logger of the current invocation. It is
// replaced in PersistentPreRun once the flags are parsed.
var logger = log.New(io.Discard)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the bulkrename command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bulkrename --pattern GLOB [flags]",
		Short: "Rename many files at once, safely",
		Long: `bulkrename renames every file in a directory whose name matches a glob
pattern. New names are built from an optional prefix, the original name
and a zero-padded sequence number.

The full plan is validated before anything is touched: duplicate new
names and targets that already exist are reported together and abort
the run. After you confirm, each file is moved through a temporary name
so that renames within the set cannot clobber each other.

Settings can also come from BULKRENAME_* environment variables or from a
YAML/JSON preset file (--preset).

Examples:
  bulkrename --pattern "*.jpg" --prefix trip_ --suffix
  bulkrename --dir scans --pattern "page*.png" --sortnum --suffix --dry-run
  bulkrename --pattern "*.txt" --prefix old_ --origin --yes --json

Exit codes:
  0  success, nothing to do, or dry run
  1  general error (bad flags, invalid pattern)
  2  directory not found
  3  validation failed, nothing renamed
  4  a rename failed, earlier renames were kept
  5  cancelled at the prompt`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger = newLogger(cmd.ErrOrStderr())
		},

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRename(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	config.RegisterFlags(rootCmd.Flags())

	return rootCmd
}

// newLogger returns a charmbracelet logger writing to w. Debug output is
// enabled by --verbose.
func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "bulkrename",
		Level:  level,
	})
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// The first SIGINT or SIGTERM cancels the command's context: a pending
// prompt is abandoned and no further entries are renamed. Signal handling
// is then released, so a second signal terminates the process. CLIError
// types carry their own exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	context.AfterFunc(ctx, stop)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(rootCmd.ErrOrStderr(), cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		// Generic error (unknown flag, bad flag value): exit with code 1.
		printError(rootCmd.ErrOrStderr(), err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
//
// Validation failures list each problem: as "problems" in JSON and one per
// line in text (via ValidationError's own message).
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errMap := map[string]interface{}{
			"message": message,
		}
		if underlying != nil {
			errMap["detail"] = underlying.Error()

			var vErr *model.ValidationError
			if errors.As(underlying, &vErr) {
				errMap["problems"] = lo.Map(vErr.Problems, func(p error, _ int) string {
					return p.Error()
				})
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errMap}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	// Text format: "Error: <message>" on stderr.
	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog writes a structured debug message with alternating key/value
// pairs. It is visible only with --verbose.
func VerboseLog(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
