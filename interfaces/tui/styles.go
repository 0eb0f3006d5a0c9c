package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title     lipgloss.Style
	Row       lipgloss.Style
	Cursor    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Pane      lipgloss.Style
	Active    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Confirm   lipgloss.Style
	StatusBar lipgloss.Style
}

func stylesFor(dark bool) Styles {
	fg, muted, accent, border := lipgloss.Color("235"), lipgloss.Color("244"), lipgloss.Color("25"), lipgloss.Color("250")
	if dark {
		fg, muted, accent, border = lipgloss.Color("252"), lipgloss.Color("242"), lipgloss.Color("111"), lipgloss.Color("238")
	}

	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Row:       lipgloss.NewStyle().Foreground(fg),
		Cursor:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(muted).Width(13),
		Value:     lipgloss.NewStyle().Foreground(fg),
		Pane:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1).MarginLeft(4),
		Active:    lipgloss.NewStyle().Foreground(accent).Underline(true),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Confirm:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		StatusBar: lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
