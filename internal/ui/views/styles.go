package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Location      lipgloss.Style
	Prompt        lipgloss.Style
	Dim           lipgloss.Style
	Section       lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	Cursor        lipgloss.Style
	Checked       lipgloss.Style
	Unchecked     lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusRefresh lipgloss.Style
	Footer        lipgloss.Style
	Uptime        lipgloss.Style
	HelpBox       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		Prompt:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cursor:        lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Checked:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Unchecked:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusRefresh: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Footer:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Uptime:        lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(1, 2),
	}
}
