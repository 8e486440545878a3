package shop

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	name    lipgloss.Style
	detail  lipgloss.Style
	muted   lipgloss.Style
	price   lipgloss.Style
	total   lipgloss.Style
	good    lipgloss.Style
	warning lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		price:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		total:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		good:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
