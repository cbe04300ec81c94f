package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/bulkrename/internal/config"
	"github.com/shinji-kodama/bulkrename/internal/model"
	"github.com/shinji-kodama/bulkrename/internal/pipeline"
	"github.com/shinji-kodama/bulkrename/internal/rename"
	"github.com/shinji-kodama/bulkrename/internal/review"
	"github.com/shinji-kodama/bulkrename/internal/validate"
)

// runRename is the main logic function of the command. It resolves the
// settings, wires the pipeline, runs it and reports the outcome.
func runRename(cmd *cobra.Command) error {
	// Step 1: Resolve flags, environment and preset into settings.
	settings, err := config.Load(cmd.Flags())
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load settings", err)
	}
	if settings.Preset != "" {
		VerboseLog("applied preset", "path", settings.Preset)
	}
	VerboseLog("resolved options",
		"dir", settings.Options.SourceDir,
		"pattern", settings.Options.FilePattern,
		"sortnum", settings.Options.SortByNumber,
		"prefix", settings.Options.Prefix,
		"origin", settings.Options.UseOriginalName,
		"suffix", settings.Options.AddSequence,
		"yes", settings.Yes,
		"dryRun", settings.DryRun,
	)

	// Step 2: Build the collaborators. In JSON mode stdout carries only the
	// result document, so the review and the prompt go to stderr.
	executor, err := rename.NewExecutor()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to initialize renamer", err)
	}

	humanOut := cmd.OutOrStdout()
	if IsJSONOutput() {
		humanOut = cmd.ErrOrStderr()
	}

	var confirmer review.Confirmer = review.PromptConfirmer{In: cmd.InOrStdin(), Out: humanOut}
	if settings.Yes {
		confirmer = review.AutoConfirmer{}
	}

	progress := &progressObserver{out: humanOut, quiet: IsJSONOutput()}
	if settings.Progress {
		progress.errOut = cmd.ErrOrStderr()
	}

	runner := &pipeline.Runner{
		Validator: validate.New(),
		Executor:  executor,
		Confirmer: confirmer,
		Review:    humanOut,
		Observer:  progress,
		Logger:    logger,
		DryRun:    settings.DryRun,
	}

	// Step 3: Run and report.
	outcome := runner.Run(cmd.Context(), settings.Options)
	progress.finish(outcome.Kind == model.OutcomeRenamed)
	VerboseLog("run ended", "kind", outcome.Kind, "completed", outcome.Completed)

	if err := outcomeError(outcome); err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), outcome)
	return nil
}

// outcomeError translates a failed outcome into a CLIError carrying the
// outcome's exit code. Successful outcomes yield nil.
func outcomeError(o model.Outcome) error {
	if !o.Failed() {
		return nil
	}

	code := o.ExitCode()
	switch o.Kind {
	case model.OutcomeCancelled:
		if o.Err != nil {
			return model.WrapCLIError(code, "operation cancelled", o.Err)
		}
		return model.NewCLIError(code, "operation cancelled by user, nothing was renamed")
	case model.OutcomeConfirmFailed:
		return model.WrapCLIError(code, "failed to read user input", o.Err)
	case model.OutcomeValidationFailed:
		return model.WrapCLIError(code, "nothing was renamed", o.Err)
	case model.OutcomeExecutionFailed:
		return model.WrapCLIError(code, executionFailureMessage(o), o.Err)
	default:
		return model.WrapCLIError(code, "cannot start", o.Err)
	}
}

// executionFailureMessage summarizes where execution stopped, e.g.
// "rename stopped at the 3rd of 5 files (2 renamed, 3 untouched)".
func executionFailureMessage(o model.Outcome) string {
	total := o.Plan.Len()
	return fmt.Sprintf("rename stopped at the %s of %s files (%s renamed, %s untouched)",
		humanize.Ordinal(o.Completed+1), humanize.Comma(int64(total)),
		humanize.Comma(int64(o.Completed)), humanize.Comma(int64(total-o.Completed)))
}

// progressObserver reports completed renames: a "renamed" line per entry
// on out, and a progress bar on errOut when one is set.
type progressObserver struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool

	bar *progressbar.ProgressBar
}

// ExecutionStarted implements rename.StartObserver.
func (p *progressObserver) ExecutionStarted(total int) {
	if p.errOut != nil {
		p.bar = newProgressBar(p.errOut, total)
	}
}

// EntryRenamed implements rename.Observer.
func (p *progressObserver) EntryRenamed(index int, entry model.PlanEntry) {
	if !p.quiet {
		fmt.Fprintf(p.out, "renamed [%s] -> [%s]\n", entry.Source, entry.NewName)
	}
	if p.bar != nil {
		_ = p.bar.Set(index + 1)
	}
}

// finish completes the bar, or clears it when the run did not rename
// every entry.
func (p *progressObserver) finish(complete bool) {
	if p.bar == nil {
		return
	}
	if complete {
		_ = p.bar.Finish()
		return
	}
	_ = p.bar.Clear()
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("renaming"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
