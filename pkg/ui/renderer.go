package ui

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
)

const wordWrap = 100

// HTMLToMarkdown converts a reply fragment from the chat server back to markdown.
func HTMLToMarkdown(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// RenderReply renders an HTML reply for the terminal. On any conversion error the
// input is returned unchanged.
func RenderReply(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	md, err := HTMLToMarkdown(html)
	if err != nil {
		return html
	}
	return RenderMarkdown(md)
}

// RenderMarkdown renders markdown with glamour, falling back to the raw text.
func RenderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
