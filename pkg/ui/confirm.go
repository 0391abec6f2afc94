// Package ui renders the interactive parts of notebridge on the terminal.
// The only interactive moment is the manual-login confirmation during
// authentication; everything else is non-interactive JSON on stdout.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)

	hintStyle = lipgloss.NewStyle().
			Faint(true).
			PaddingLeft(2)
)

// ErrAborted is returned when the operator quits instead of confirming.
var ErrAborted = fmt.Errorf("confirmation aborted")

// confirmModel blocks until the operator presses enter. There is
// deliberately no timeout: the wait ends only on an explicit signal.
type confirmModel struct {
	spinner spinner.Model
	title   string
	steps   []string
	done    bool
	aborted bool
}

func newConfirmModel(title string, steps []string) confirmModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	return confirmModel{
		spinner: s,
		title:   title,
		steps:   steps,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(bannerStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, step := range m.steps {
		b.WriteString(stepStyle.Render(fmt.Sprintf("%d. %s", i+1, step)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.spinner.View() + "waiting, press enter when done (esc aborts)"))
	b.WriteString("\n")
	return b.String()
}

// ConfirmLogin renders the manual-login instructions on stderr and blocks
// indefinitely until the operator presses enter. Returns ErrAborted when the
// operator quits instead. Nothing is written to stdout.
func ConfirmLogin() error {
	model := newConfirmModel("MANUAL LOGIN REQUIRED", []string{
		"Log in to your account in the browser window",
		"Make sure you can see the notebook interface",
		"Press enter here when done",
	})

	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("confirmation prompt failed: %w", err)
	}
	if m, ok := final.(confirmModel); ok && m.aborted {
		return ErrAborted
	}
	return nil
}
