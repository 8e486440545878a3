// Package shop renders storefront data for the terminal.
package shop

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type viewFunc func(s styles) string

// model renders one view and quits.
type model struct {
	view   viewFunc
	styles styles
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(renderReadyMsg); ok {
		m.output = m.view(m.styles)
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	return m.output
}

func render(view viewFunc) (string, error) {
	p := tea.NewProgram(
		model{view: view, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := final.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
