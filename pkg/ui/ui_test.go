package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "strong",
			html: "<p><strong>Ireland</strong> votes</p>",
			want: "**Ireland** votes",
		},
		{
			name: "inline code",
			html: "<p>Run <code>chatge serve</code></p>",
			want: "Run `chatge serve`",
		},
		{
			name: "plain paragraph",
			html: "<p>Hello</p>",
			want: "Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTMLToMarkdown(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderReply(t *testing.T) {
	assert.Equal(t, "", RenderReply("   "))
	assert.Contains(t, RenderReply("<p>Polling stations open at 7am</p>"), "Polling stations open at 7am")
}

func TestRunWithSpinner(t *testing.T) {
	var out bytes.Buffer
	calls := 0

	err := RunWithSpinner(&out, "Thinking…", func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	want := errors.New("boom")
	err = RunWithSpinner(&out, "Thinking…", func() error { return want })
	assert.ErrorIs(t, err, want)
}

func TestSpinnerModel_QuitsOnDone(t *testing.T) {
	m := NewSpinner("Thinking…")
	assert.Contains(t, m.View(), "Thinking…")

	next, cmd := m.Update(doneMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, "", next.View())
}

func TestRenderPromptList(t *testing.T) {
	out := RenderPromptList([]string{"How do I register to vote?", "What are the key election issues?"})

	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "How do I register to vote?")
	assert.Contains(t, out, "2.")
}

func TestRenderErrorBox(t *testing.T) {
	out := RenderErrorBox("Request failed", "An error occurred while processing your request.")

	assert.Contains(t, out, "Request failed")
	assert.Contains(t, out, "An error occurred")
}

func TestReadSelection_NoOptions(t *testing.T) {
	_, err := ReadSelection(nil, "Pick")
	assert.Error(t, err)
}
