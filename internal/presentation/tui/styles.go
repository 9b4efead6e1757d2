package tui

import (
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for one theme.
type Styles struct {
	Screen  lipgloss.Style
	Title   lipgloss.Style
	Card    lipgloss.Style
	Step    lipgloss.Style
	Hint    lipgloss.Style
	Notice  lipgloss.Style
	DotDone lipgloss.Style
	DotTodo lipgloss.Style
}

var noticeColor = lipgloss.Color("#b91c1c")

// NewStyles derives the styles from theme.
func NewStyles(theme domain.Theme) Styles {
	bg := lipgloss.Color(theme.Background)
	fg := lipgloss.Color(theme.Foreground)

	return Styles{
		Screen: lipgloss.NewStyle().
			Background(bg).
			Foreground(fg).
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(fg).
			Padding(1, 2).
			MarginTop(1),
		Step: lipgloss.NewStyle().
			Foreground(fg),
		Hint: lipgloss.NewStyle().
			Faint(true).
			MarginTop(1),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(noticeColor).
			Foreground(noticeColor).
			Bold(true).
			Padding(0, 1),
		DotDone: lipgloss.NewStyle().Foreground(fg),
		DotTodo: lipgloss.NewStyle().Faint(true),
	}
}
