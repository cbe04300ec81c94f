package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/shinji-kodama/bulkrename/internal/model"
)

// printResult outputs the summary of a successful run in text or JSON
// format, depending on the global --json flag.
func printResult(w io.Writer, o model.Outcome) {
	if IsJSONOutput() {
		printResultJSON(w, o)
	} else {
		printResultText(w, o)
	}
}

// resultJSON is the JSON document written to stdout for a successful run.
type resultJSON struct {
	// Status is the outcome kind: "renamed", "planned" or "nothing-to-do".
	Status string `json:"status"`

	// Renamed is the number of files renamed on disk.
	Renamed int `json:"renamed"`

	// Message explains a "nothing-to-do" result.
	Message string `json:"message,omitempty"`

	// Entries lists the plan in execution order.
	Entries []entryJSON `json:"entries"`
}

// entryJSON is a single rename in the JSON output.
type entryJSON struct {
	From    string `json:"from"`
	To      string `json:"to"`
	NewName string `json:"newName"`
}

func printResultJSON(w io.Writer, o model.Outcome) {
	result := resultJSON{
		Status:  o.Kind.String(),
		Renamed: o.Completed,
		// Use an empty slice instead of nil so the output shows []
		// instead of null when there is no plan.
		Entries: []entryJSON{},
	}
	if o.Kind == model.OutcomeNothingToDo && o.Err != nil {
		result.Message = o.Err.Error()
	}
	if o.Plan != nil {
		result.Entries = lo.Map(o.Plan.Entries, func(e model.PlanEntry, _ int) entryJSON {
			return entryJSON{From: e.Source, To: e.Target, NewName: e.NewName}
		})
	}

	// MarshalIndent produces human-readable JSON with 2-space indentation.
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Error: failed to marshal JSON: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

func printResultText(w io.Writer, o model.Outcome) {
	switch o.Kind {
	case model.OutcomeRenamed:
		fmt.Fprintf(w, "Renamed %s.\n", countFiles(o.Completed))
	case model.OutcomePlanned:
		fmt.Fprintf(w, "Dry run: %s would be renamed, nothing was changed.\n", countFiles(o.Plan.Len()))
	case model.OutcomeNothingToDo:
		if o.Err != nil {
			fmt.Fprintf(w, "Nothing to do: %v.\n", o.Err)
		} else {
			fmt.Fprintln(w, "Nothing to do.")
		}
	}
}

// countFiles renders n with thousands separators and the right noun,
// e.g. "1 file" or "1,024 files".
func countFiles(n int) string {
	noun := "files"
	if n == 1 {
		noun = "file"
	}
	return humanize.Comma(int64(n)) + " " + noun
}
