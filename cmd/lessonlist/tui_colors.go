package main

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// tuiAccent is the highlight color for focused fields and selected rows.
const tuiAccent = lipgloss.Color("#4CAF50")

// tc centralizes shared color styles used across the TUI views.
var tc = struct {
	Title   lipgloss.Style // section headings — bold cyan
	Label   lipgloss.Style // field labels
	Dim     lipgloss.Style // secondary info
	Faint   lipgloss.Style // chrome, help
	Green   lipgloss.Style
	Red     lipgloss.Style
	Help    lipgloss.Style // help bar — faint, left margin
	Focused lipgloss.Style // focused field border

	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	DialogOK  lipgloss.Style
	DialogErr lipgloss.Style

	NormalTitle   lipgloss.Style
	SelectedTitle lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16),
	Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Faint: lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
	Green: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Red:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Help:  lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("239")),

	Focused: lipgloss.NewStyle().Foreground(tuiAccent).Bold(true),

	Button: lipgloss.NewStyle().Padding(0, 2).
		Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
	ButtonActive: lipgloss.NewStyle().Padding(0, 2).Bold(true).
		Foreground(lipgloss.Color("15")).Background(tuiAccent),

	DialogOK: lipgloss.NewStyle().Padding(1, 3).
		Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("2")),
	DialogErr: lipgloss.NewStyle().Padding(1, 3).
		Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("1")),

	NormalTitle: lipgloss.NewStyle().PaddingLeft(2),
	SelectedTitle: lipgloss.NewStyle().Bold(true).
		Foreground(tuiAccent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(tuiAccent).PaddingLeft(1),
}

// configureDelegate applies the shared single-line delegate styles.
func configureDelegate(d *list.DefaultDelegate) {
	d.ShowDescription = false
	d.SetHeight(1)
	d.SetSpacing(0)
	d.Styles.NormalTitle = tc.NormalTitle
	d.Styles.SelectedTitle = tc.SelectedTitle
}
