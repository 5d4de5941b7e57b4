package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lmarin/obra/internal/config"
)

// Styles holds the pre-built lipgloss styles for the dashboard
type Styles struct {
	Title     lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Notice    lipgloss.Style
	ErrNotice lipgloss.Style
	Panel     lipgloss.Style
	FormLabel lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles builds the style set from the configured color scheme
func NewStyles(scheme config.ColorScheme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(scheme.Primary)),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(scheme.Accent)).
			Underline(true),
		TabIdle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(scheme.Muted)),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(scheme.Secondary)),
		Normal: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(scheme.Muted)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(scheme.Success)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(scheme.Warning)),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(scheme.Danger)),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color(scheme.Success)),
		ErrNotice: lipgloss.NewStyle().
			Foreground(lipgloss.Color(scheme.Danger)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(scheme.Border)).
			Padding(0, 1),
		FormLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(scheme.Secondary)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(scheme.Muted)),
	}
}
