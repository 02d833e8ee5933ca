package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sysmon/internal/ui"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F") // Deep void
	ColorSurfaceBg = lipgloss.Color("#12121A") // Dark surface
	ColorBorder    = lipgloss.Color("#2A2A4A") // Glass border (purple tint)

	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	ColorTextPrimary   = lipgloss.Color("#FFFFFF") // Pure white
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)
)

// Status line styles by level
var (
	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Padding(0, 1)

	StatusWarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Padding(0, 1)
)

// schedulerIndicator returns the glyph and style for a scheduler status label.
func schedulerIndicator(status string) (string, lipgloss.Style) {
	switch status {
	case "live":
		return ui.SymbolLive, lipgloss.NewStyle().Foreground(ColorHealthy)
	case "refreshing":
		return ui.SymbolProgress, lipgloss.NewStyle().Foreground(ColorWarning)
	case "stopping":
		return ui.SymbolProgress, lipgloss.NewStyle().Foreground(ColorCritical)
	default:
		return ui.SymbolIdle, lipgloss.NewStyle().Foreground(ColorTextMuted)
	}
}
