package format

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const markdownError = "<p>Error rendering markdown</p>"

// Markdown renders full CommonMark (plus GFM tables, strikethrough and autolinks)
// after stripping citation markers. Raw HTML in the reply is passed through.
type Markdown struct {
	md goldmark.Markdown
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithUnsafe(),
			),
		),
	}
}

func (m *Markdown) Render(text string) string {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(StripCitations(text)), &buf); err != nil {
		return markdownError
	}
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "<p></p>"
	}
	return out
}

// Mode names a renderer selectable from configuration.
type Mode string

const (
	ModeMinimal  Mode = "minimal"
	ModeMarkdown Mode = "markdown"
)

// ForMode returns the renderer for mode, defaulting to Minimal.
func ForMode(mode Mode) Renderer {
	switch Mode(strings.ToLower(string(mode))) {
	case ModeMarkdown:
		return NewMarkdown()
	default:
		return Minimal{}
	}
}
