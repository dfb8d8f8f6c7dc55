package render

import (
	"github.com/charmbracelet/lipgloss"

	"liendesk/internal/domain"
)

var (
	SafeColor    = lipgloss.Color("#10B981") // Green
	SoonColor    = lipgloss.Color("#F59E0B") // Amber
	OverdueColor = lipgloss.Color("#F87171") // Red
	PrimaryColor = lipgloss.Color("#A78BFA")
	MutedColor   = lipgloss.Color("#9CA3AF")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Muted = lipgloss.NewStyle().Foreground(MutedColor)
	Error = lipgloss.NewStyle().Foreground(OverdueColor)
	Label = lipgloss.NewStyle().Bold(true)

	StepCurrent = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	StepVisited = lipgloss.NewStyle()
	StepLocked  = lipgloss.NewStyle().Foreground(MutedColor)
)

// UrgencyStyle colours a deadline: green safe, amber soon, red overdue.
func UrgencyStyle(u domain.Urgency) lipgloss.Style {
	switch u {
	case domain.UrgencyOverdue:
		return lipgloss.NewStyle().Foreground(OverdueColor).Bold(true)
	case domain.UrgencySoon:
		return lipgloss.NewStyle().Foreground(SoonColor)
	default:
		return lipgloss.NewStyle().Foreground(SafeColor)
	}
}
