package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type doneMsg struct{ err error }

type SpinnerModel struct {
	spinner  spinner.Model
	text     string
	quitting bool
	err      error
}

func NewSpinner(text string) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorGreen)
	return SpinnerModel{spinner: s, text: text}
}

func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.quitting = true
		m.err = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m SpinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

// RunWithSpinner shows a spinner labelled text on out while work runs and
// returns work's error.
func RunWithSpinner(out io.Writer, text string, work func() error) error {
	p := tea.NewProgram(NewSpinner(text), tea.WithOutput(out), tea.WithInput(nil))

	result := make(chan error, 1)
	go func() {
		err := work()
		result <- err
		p.Send(doneMsg{err: err})
	}()

	// A failed program only loses the indicator; the work still completes.
	_, _ = p.Run()
	return <-result
}
