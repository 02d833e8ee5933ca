package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar block characters.
const (
	barFilled = '█'
	barEmpty  = '░'
)

// RenderBar draws a usage bar colored by ThresholdColor.
// The percent parameter is clamped to 0-100; width is the bar length excluding brackets.
// Output format: [████████░░░░]  67.0%
func RenderBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}

	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	filled := int((percent / 100.0) * float64(width))

	var sb strings.Builder
	sb.Grow(width + 2)
	sb.WriteRune('[')
	for i := 0; i < width; i++ {
		if i < filled {
			sb.WriteRune(barFilled)
		} else {
			sb.WriteRune(barEmpty)
		}
	}
	sb.WriteRune(']')

	style := lipgloss.NewStyle().Foreground(ThresholdColor(percent))
	return style.Render(sb.String()) + fmt.Sprintf(" %5.1f%%", percent)
}
