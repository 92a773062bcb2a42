package tui

import "github.com/charmbracelet/lipgloss"

var (
	positiveColor = lipgloss.Color("#8BC34A")
	negativeColor = lipgloss.Color("#e53935")
	neutralColor  = lipgloss.Color("#90A4AE")
	accentColor   = lipgloss.Color("#2196F3")
	mutedColor    = lipgloss.Color("#6c7a89")
)

// Styles groups the lipgloss styles of the dashboard.
type Styles struct {
	Title    lipgloss.Style
	Prompt   lipgloss.Style
	Status   lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Neutral  lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the dashboard palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1),
		Prompt:   lipgloss.NewStyle().Foreground(accentColor),
		Status:   lipgloss.NewStyle().Foreground(accentColor),
		Success:  lipgloss.NewStyle().Foreground(positiveColor),
		Failure:  lipgloss.NewStyle().Foreground(negativeColor).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(mutedColor),
		Label:    lipgloss.NewStyle().Width(10),
		Value:    lipgloss.NewStyle().Bold(true),
		Positive: lipgloss.NewStyle().Foreground(positiveColor),
		Negative: lipgloss.NewStyle().Foreground(negativeColor),
		Neutral:  lipgloss.NewStyle().Foreground(neutralColor),
		Help:     lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1),
	}
}
