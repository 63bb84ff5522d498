package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dohsimpson/habittrove/internal/scheduler"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

func statusStyle(s scheduler.Status) lipgloss.Style {
	switch s {
	case scheduler.DueIncomplete:
		return dueStyle
	case scheduler.DueComplete:
		return doneStyle
	case scheduler.Overdue:
		return overdueStyle
	}
	return mutedStyle
}
