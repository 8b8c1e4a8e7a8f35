package provision

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))

	okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))

	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8"))
)
