// Package format turns assistant reply text into HTML fragments for the chat widget.
package format

import (
	"regexp"
	"strings"
)

// InvalidFormat is returned in place of a reply that is not text.
const InvalidFormat = "<p>Invalid response format</p>"

// Renderer converts reply text into an HTML fragment.
type Renderer interface {
	Render(text string) string
}

var (
	citationPattern = regexp.MustCompile(`【\d+:\d+†source】`)
	boldPattern     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern   = regexp.MustCompile(`_(.*?)_`)
	codePattern     = regexp.MustCompile("`([^`]+)`")
)

// StripCitations removes upstream file-search annotations such as 【4:0†source】.
func StripCitations(text string) string {
	return citationPattern.ReplaceAllString(text, "")
}

// Minimal renders a small markdown subset: bold, italic, inline code, paragraphs
// and line breaks. Nothing is escaped; the output is inserted as trusted HTML.
type Minimal struct{}

func (Minimal) Render(text string) string {
	return FormatResponse(text)
}

// FormatResponse applies the substitutions in order and wraps the result in a paragraph.
func FormatResponse(text string) string {
	out := StripCitations(text)
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	out = codePattern.ReplaceAllString(out, "<code>$1</code>")
	out = strings.ReplaceAll(out, "\n\n", "</p><p>")
	out = strings.ReplaceAll(out, "\n", "<br>")

	if !strings.HasPrefix(out, "<p>") {
		out = "<p>" + out
	}
	if !strings.HasSuffix(out, "</p>") {
		out += "</p>"
	}
	return out
}

// FormatValue is the guarded entry point for values of unknown type.
func FormatValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return InvalidFormat
	}
	return FormatResponse(s)
}
