// Package review shows a rename plan to the operator and asks for
// confirmation before anything is changed.
//
// Confirmation is modelled as an injectable Confirmer so that callers get an
// explicit confirmed/aborted result and tests can simulate either answer
// without a terminal.
package review

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/shinji-kodama/bulkrename/internal/model"
)

// PrintPlan writes one line per entry in the form
//
//	rename [<source>] -> [<new name>]
//
// Styling is applied only when w is a colour-capable terminal.
func PrintPlan(w io.Writer, plan *model.Plan) {
	r := lipgloss.NewRenderer(w)
	verb := r.NewStyle().Faint(true)
	src := r.NewStyle()
	dst := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))

	for _, e := range plan.Entries {
		fmt.Fprintf(w, "%s [%s] -> [%s]\n",
			verb.Render("rename"), src.Render(e.Source), dst.Render(e.NewName))
	}
}

// Confirmer decides whether a reviewed plan may be executed.
type Confirmer interface {
	// Confirm returns true to proceed and false to abort. An error means
	// the answer could not be obtained.
	Confirm(ctx context.Context, plan *model.Plan) (bool, error)
}

// PromptConfirmer asks on Out and reads a single line from In.
// "y" or "yes" (any case) confirms; anything else, including end of input,
// aborts. A cancelled ctx abandons the pending read and returns ctx.Err().
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// answer is the result of one prompt read.
type answer struct {
	ok  bool
	err error
}

// Confirm implements Confirmer.
func (p PromptConfirmer) Confirm(ctx context.Context, plan *model.Plan) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	noun := "renames"
	if plan.Len() == 1 {
		noun = "rename"
	}
	fmt.Fprintf(p.Out, "\nProceed with %s %s? [y/N] ", humanize.Comma(int64(plan.Len())), noun)

	// A blocked read cannot be interrupted; on cancellation the goroutine
	// is left behind and exits once the buffered send completes.
	answers := make(chan answer, 1)
	go func() {
		answers <- readAnswer(p.In)
	}()

	select {
	case a := <-answers:
		return a.ok, a.err
	case <-ctx.Done():
		fmt.Fprintln(p.Out)
		return false, ctx.Err()
	}
}

// readAnswer reads one line from in and reports whether it confirms.
func readAnswer(in io.Reader) answer {
	// bufio.Scanner handles different line endings across platforms
	// (LF on Unix, CRLF on Windows).
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		text := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer{ok: text == "y" || text == "yes"}
	}

	// If stdin is closed, treat it as "no". A read error is reported.
	return answer{err: scanner.Err()}
}

// AutoConfirmer confirms every plan. It backs the --yes flag.
type AutoConfirmer struct{}

// Confirm implements Confirmer.
func (AutoConfirmer) Confirm(context.Context, *model.Plan) (bool, error) {
	return true, nil
}
