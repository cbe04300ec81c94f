// root_test.go drives the bulkrename command end to end against temporary
// directories.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/bulkrename/internal/model"
)

// cmdResult captures the streams of one command invocation.
type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// runCommand executes a fresh root command with args and stdin.
func runCommand(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()
	var out, errOut bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return cmdResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func makeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
	return dir
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// requireExitCode asserts that err is a CLIError with the given code.
func requireExitCode(t *testing.T, err error, code model.ExitCode) *model.CLIError {
	t.Helper()
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected *model.CLIError, got %v", err)
	assert.Equal(t, code, cliErr.Code)
	return cliErr
}

func TestRename_Yes(t *testing.T) {
	dir := makeFiles(t, "c.png", "a.png", "b.png")

	res := runCommand(t, "", "--dir", dir, "--pattern", "*.png", "--prefix", "v_", "--suffix", "--yes")
	require.NoError(t, res.err)

	assert.Equal(t, []string{"v_1.png", "v_2.png", "v_3.png"}, dirNames(t, dir))
	assert.Contains(t, res.stdout, "rename ["+filepath.Join(dir, "a.png")+"] -> [v_1.png]")
	assert.Contains(t, res.stdout, "renamed ["+filepath.Join(dir, "c.png")+"] -> [v_3.png]")
	assert.Contains(t, res.stdout, "Renamed 3 files.")
	assert.NotContains(t, res.stdout, "Proceed with")
}

func TestRename_PromptAccepted(t *testing.T) {
	dir := makeFiles(t, "one.txt")

	res := runCommand(t, "y\n", "--dir", dir, "--pattern", "*.txt", "--prefix", "x_", "--origin")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Proceed with 1 rename? [y/N]")
	assert.Contains(t, res.stdout, "Renamed 1 file.")
	assert.Equal(t, []string{"x_one.txt"}, dirNames(t, dir))
}

func TestRename_PromptDeclined(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
	}{
		{"explicit no", "n\n"},
		{"empty answer", "\n"},
		{"closed stdin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := makeFiles(t, "a.txt", "b.txt")

			res := runCommand(t, tt.stdin, "--dir", dir, "--pattern", "*", "--suffix")
			requireExitCode(t, res.err, model.ExitUserCancelled)
			assert.Equal(t, []string{"a.txt", "b.txt"}, dirNames(t, dir))
		})
	}
}

func TestRename_DryRun(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt")

	res := runCommand(t, "", "--dir", dir, "--pattern", "*.txt", "--suffix", "-n")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "-> [1.txt]")
	assert.Contains(t, res.stdout, "Dry run: 2 files would be renamed")
	assert.Equal(t, []string{"a.txt", "b.txt"}, dirNames(t, dir))
}

func TestRename_NoMatches(t *testing.T) {
	dir := makeFiles(t, "a.txt")

	res := runCommand(t, "", "--dir", dir, "--pattern", "*.jpg", "--suffix")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Nothing to do")
	assert.Contains(t, res.stdout, `"*.jpg"`)
	assert.Equal(t, []string{"a.txt"}, dirNames(t, dir))
}

func TestRename_Failures(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		args     []string
		wantCode model.ExitCode
		wantMsg  string
	}{
		{
			name:     "missing pattern",
			args:     []string{"--suffix"},
			wantCode: model.ExitGeneralError,
			wantMsg:  "pattern",
		},
		{
			name:     "invalid pattern",
			args:     []string{"--pattern", "[a-", "--suffix"},
			wantCode: model.ExitGeneralError,
			wantMsg:  "invalid file pattern",
		},
		{
			name:     "duplicate names",
			files:    []string{"a.txt", "b.txt"},
			args:     []string{"--pattern", "*.txt", "--prefix", "same", "--yes"},
			wantCode: model.ExitValidationFailed,
			wantMsg:  "duplicate target names",
		},
		{
			name:     "target exists",
			files:    []string{"a.txt", "x_1.txt", "keep.md"},
			args:     []string{"--pattern", "a.*", "--prefix", "x_", "--suffix", "--yes"},
			wantCode: model.ExitValidationFailed,
			wantMsg:  "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := makeFiles(t, tt.files...)
			before := dirNames(t, dir)

			res := runCommand(t, "", append([]string{"--dir", dir}, tt.args...)...)
			cliErr := requireExitCode(t, res.err, tt.wantCode)
			assert.Contains(t, cliErr.Error(), tt.wantMsg)
			assert.Equal(t, before, dirNames(t, dir), "nothing may be renamed")
		})
	}
}

func TestRename_DirectoryNotFound(t *testing.T) {
	res := runCommand(t, "", "--dir", filepath.Join(t.TempDir(), "nope"), "--pattern", "*", "--yes")
	requireExitCode(t, res.err, model.ExitDirectoryNotFound)
}

func TestRename_RejectsPositionalArgs(t *testing.T) {
	res := runCommand(t, "", "extra")
	require.Error(t, res.err)
}

func TestRename_JSON(t *testing.T) {
	dir := makeFiles(t, "b2.txt", "a10.txt", "a2.txt")

	res := runCommand(t, "",
		"--dir", dir, "--pattern", "*.txt", "--sortnum", "--prefix", "n", "--suffix", "--yes", "--json")
	require.NoError(t, res.err)

	var got resultJSON
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got), "stdout must be a single JSON document: %s", res.stdout)
	assert.Equal(t, "renamed", got.Status)
	assert.Equal(t, 3, got.Renamed)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, filepath.Join(dir, "a2.txt"), got.Entries[0].From)
	assert.Equal(t, "n1.txt", got.Entries[0].NewName)
	assert.Equal(t, filepath.Join(dir, "n3.txt"), got.Entries[2].To)

	assert.Contains(t, res.stderr, "rename [", "review goes to stderr in JSON mode")
	assert.NotContains(t, res.stdout, "renamed [")
}

func TestRename_Preset(t *testing.T) {
	dir := makeFiles(t, "a.log", "b.log")
	preset := filepath.Join(t.TempDir(), "logs.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("pattern: \"*.log\"\nprefix: archive_\nsuffix: true\n"), 0o644))

	res := runCommand(t, "", "--dir", dir, "--preset", preset, "--yes")
	require.NoError(t, res.err)
	assert.Equal(t, []string{"archive_1.log", "archive_2.log"}, dirNames(t, dir))
}

func TestRename_Progress(t *testing.T) {
	dir := makeFiles(t, "a.txt", "b.txt")

	res := runCommand(t, "", "--dir", dir, "--pattern", "*.txt", "--suffix", "--yes", "--progress")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "renaming")
	assert.Equal(t, []string{"1.txt", "2.txt"}, dirNames(t, dir))
}

func TestRename_Verbose(t *testing.T) {
	dir := makeFiles(t, "a.txt")

	res := runCommand(t, "", "--dir", dir, "--pattern", "*.txt", "-n", "-v")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "bulkrename")
	assert.Contains(t, res.stderr, "listed files")
	assert.Contains(t, res.stderr, "resolved options")
	assert.Contains(t, res.stderr, "sortnum=false")
	assert.Contains(t, res.stderr, "run ended")
	assert.Contains(t, res.stderr, "kind=planned")
}

func TestRename_QuietWithoutVerbose(t *testing.T) {
	dir := makeFiles(t, "a.txt")

	res := runCommand(t, "", "--dir", dir, "--pattern", "*.txt", "-n")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stderr, "resolved options")
}

// TestOutcomeError verifies the outcome to CLIError mapping.
func TestOutcomeError(t *testing.T) {
	plan, err := model.NewPlan(
		[]string{"1", "2", "3", "4", "5"},
		[]string{"a", "b", "c", "d", "e"},
	)
	require.NoError(t, err)

	assert.NoError(t, outcomeError(model.Outcome{Kind: model.OutcomeRenamed}))
	assert.NoError(t, outcomeError(model.Outcome{Kind: model.OutcomePlanned}))

	cancelled := outcomeError(model.Outcome{Kind: model.OutcomeCancelled})
	requireExitCode(t, cancelled, model.ExitUserCancelled)
	assert.Contains(t, cancelled.Error(), "cancelled by user")

	readErr := outcomeError(model.Outcome{Kind: model.OutcomeConfirmFailed, Err: os.ErrClosed})
	requireExitCode(t, readErr, model.ExitGeneralError)
	assert.Contains(t, readErr.Error(), "failed to read user input")

	interrupted := outcomeError(model.Outcome{Kind: model.OutcomeCancelled, Err: context.Canceled})
	requireExitCode(t, interrupted, model.ExitUserCancelled)

	execErr := outcomeError(model.Outcome{
		Kind:      model.OutcomeExecutionFailed,
		Plan:      plan,
		Completed: 2,
		Err:       &model.RenameExecutionError{Index: 2, Total: 5, Source: "3", Target: "c", Err: os.ErrPermission},
	})
	cliErr := requireExitCode(t, execErr, model.ExitRenameFailed)
	assert.Equal(t, "rename stopped at the 3rd of 5 files (2 renamed, 3 untouched)", cliErr.Message)
	assert.ErrorIs(t, execErr, os.ErrPermission)
}

func TestPrintError(t *testing.T) {
	t.Cleanup(func() { jsonOutput = false })

	problems := &model.ValidationError{Problems: []error{
		&model.TargetExistsError{Source: "a", Target: "b"},
		&model.ConflictError{Duplicates: []model.DuplicateName{{Name: "x", Sources: []string{"1", "2"}}}},
	}}

	t.Run("text", func(t *testing.T) {
		jsonOutput = false
		var buf bytes.Buffer
		printError(&buf, "nothing was renamed", problems)
		assert.True(t, strings.HasPrefix(buf.String(), "Error: nothing was renamed: plan validation failed with 2 problems:"))
	})

	t.Run("text without detail", func(t *testing.T) {
		jsonOutput = false
		var buf bytes.Buffer
		printError(&buf, "boom", nil)
		assert.Equal(t, "Error: boom\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		jsonOutput = true
		var buf bytes.Buffer
		printError(&buf, "nothing was renamed", problems)

		var got struct {
			Error struct {
				Message  string   `json:"message"`
				Detail   string   `json:"detail"`
				Problems []string `json:"problems"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "nothing was renamed", got.Error.Message)
		assert.Len(t, got.Error.Problems, 2)
		assert.Contains(t, got.Error.Problems[0], "already exists")
	})
}
