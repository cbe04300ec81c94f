package review

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/bulkrename/internal/model"
)

func samplePlan(t *testing.T, n int) *model.Plan {
	t.Helper()
	sources := make([]string, n)
	names := make([]string, n)
	for i := range sources {
		sources[i] = "dir/" + string(rune('a'+i)) + ".txt"
		names[i] = "v_" + string(rune('1'+i)) + ".txt"
	}
	plan, err := model.NewPlan(sources, names)
	require.NoError(t, err)
	return plan
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	PrintPlan(&buf, samplePlan(t, 3))

	// A bytes.Buffer is not a terminal, so no escape codes are emitted.
	assert.Equal(t,
		"rename [dir/a.txt] -> [v_1.txt]\n"+
			"rename [dir/b.txt] -> [v_2.txt]\n"+
			"rename [dir/c.txt] -> [v_3.txt]\n",
		buf.String())
}

func TestPrintPlan_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintPlan(&buf, &model.Plan{})
	assert.Empty(t, buf.String())
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"y confirms", "y\n", true},
		{"yes confirms", "yes\n", true},
		{"upper case confirms", "YES\n", true},
		{"padded confirms", "  y  \r\n", true},
		{"n aborts", "n\n", false},
		{"empty line aborts", "\n", false},
		{"other text aborts", "sure\n", false},
		{"end of input aborts", "", false},
		{"only first line counts", "n\ny\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := PromptConfirmer{In: strings.NewReader(tt.input), Out: &out}

			got, err := c.Confirm(context.Background(), samplePlan(t, 2))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Proceed with 2 renames? [y/N]")
		})
	}
}

func TestPromptConfirmer_SingularNoun(t *testing.T) {
	var out bytes.Buffer
	c := PromptConfirmer{In: strings.NewReader("y\n"), Out: &out}

	_, err := c.Confirm(context.Background(), samplePlan(t, 1))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Proceed with 1 rename? [y/N]")
}

func TestPromptConfirmer_ReadError(t *testing.T) {
	boom := errors.New("tty gone")
	c := PromptConfirmer{In: iotest.ErrReader(boom), Out: &bytes.Buffer{}}

	got, err := c.Confirm(context.Background(), samplePlan(t, 1))
	assert.False(t, got)
	assert.ErrorIs(t, err, boom)
}

func TestPromptConfirmer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := PromptConfirmer{In: strings.NewReader("y\n"), Out: &out}

	got, err := c.Confirm(ctx, samplePlan(t, 1))
	assert.False(t, got)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String(), "no prompt after cancellation")
}

// TestPromptConfirmer_CancelWhileWaiting verifies that cancelling ctx
// releases a prompt that is blocked waiting for input.
func TestPromptConfirmer_CancelWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	c := PromptConfirmer{In: pr, Out: &out}
	plan := samplePlan(t, 2)

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := c.Confirm(ctx, plan)
		done <- result{ok, err}
	}()

	// Nothing is ever written to the pipe, so only cancellation can end
	// the prompt.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case r := <-done:
		assert.False(t, r.ok)
		assert.ErrorIs(t, r.err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Confirm did not return after the context was cancelled")
	}
	assert.Contains(t, out.String(), "Proceed with 2 renames? [y/N]")
}

func TestAutoConfirmer(t *testing.T) {
	got, err := AutoConfirmer{}.Confirm(context.Background(), samplePlan(t, 5))
	require.NoError(t, err)
	assert.True(t, got)
}
