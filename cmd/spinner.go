package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type callDoneMsg struct {
	err error
}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	call    tea.Cmd
	err     error
	done    bool
}

func newSpinnerModel(label string, call tea.Cmd) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		label: label,
		call:  call,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.call)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case callDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// withSpinner runs call while showing label on output and returns its error.
func withSpinner(ctx context.Context, output io.Writer, label string, call func(context.Context) error) error {
	p := tea.NewProgram(
		newSpinnerModel(label, func() tea.Msg {
			return callDoneMsg{err: call(ctx)}
		}),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := final.(spinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", final)
	}

	return result.err
}
