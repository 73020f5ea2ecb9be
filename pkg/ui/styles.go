package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorGreen = lipgloss.Color("34")
	colorRed   = lipgloss.Color("196")
	colorWhite = lipgloss.Color("252")
	colorGrey  = lipgloss.Color("240")

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorGrey)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	indentStyle = lipgloss.NewStyle().
			PaddingLeft(3)

	reasonTextStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	logoStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	promptIndexStyle = lipgloss.NewStyle().
				Foreground(colorGreen)
)

// UserLabel is printed before user input in the REPL.
func UserLabel() string {
	return userLabelStyle.Render("You ›")
}

// AssistantLabel is printed before each reply.
func AssistantLabel() string {
	return assistantLabelStyle.Render("ChatGE")
}

// Hint renders secondary text such as the thread id.
func Hint(text string) string {
	return hintStyle.Render(text)
}

// Logo is the banner shown by version and the REPL.
func Logo() string {
	return logoStyle.Render("chatGE.ie") + " " + hintStyle.Render("Your AI assistant for Irish General Elections")
}

// RenderPromptList numbers prompts from 1 for selection with /N.
func RenderPromptList(prompts []string) string {
	var sb strings.Builder
	for i, p := range prompts {
		sb.WriteString(fmt.Sprintf("%s %s\n", promptIndexStyle.Render(fmt.Sprintf("%2d.", i+1)), p))
	}
	return sb.String()
}

// RenderErrorBox renders a titled error with the reason wrapped to the terminal width.
func RenderErrorBox(title, reason string) string {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	contentWidth := width - 5

	header := indentStyle.Render(headerStyle.Render(fmt.Sprintf("✕ %s", title)))
	if reason == "" {
		return fmt.Sprintf("\n%s\n", header)
	}
	body := indentStyle.Render(reasonTextStyle.Width(contentWidth).Render(strings.TrimSpace(reason)))
	return fmt.Sprintf("\n%s\n%s\n", header, body)
}
