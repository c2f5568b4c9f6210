package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("120"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

var statusStyles = map[string]lipgloss.Style{
	domain.ActivityStatusPlanned:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	domain.ActivityStatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	domain.ActivityStatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
}

func statusStyle(status string) lipgloss.Style {
	if style, ok := statusStyles[status]; ok {
		return style
	}
	return mutedStyle
}

func typeGlyph(activityType string) string {
	switch activityType {
	case domain.ActivityTypeWorkout:
		return "▲"
	case domain.ActivityTypeMeal:
		return "●"
	case domain.ActivityTypeSteps:
		return "➤"
	default:
		return "·"
	}
}
