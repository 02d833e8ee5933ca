package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rileyhilliard/sysmon/internal/ui"
	"github.com/rileyhilliard/sysmon/internal/util"
)

const barWidth = 20

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderMetricsPanel())
	b.WriteString("\n")

	if m.hasData {
		b.WriteString(m.table.View())
	} else {
		b.WriteString(LabelStyle.Render("Sampling processes..."))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderPrompt())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title bar with scheduler state and update age.
func (m Model) renderHeader() string {
	var updateText string
	switch lastUpdate := m.SecondsSinceUpdate(); {
	case !m.hasData:
		updateText = "never"
	case lastUpdate == 0:
		updateText = "just now"
	case lastUpdate == 1:
		updateText = "1s ago"
	default:
		updateText = fmt.Sprintf("%ds ago", lastUpdate)
	}
	if m.lastErr != nil {
		updateText += " (last refresh failed)"
	}

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("sysmon")

	status := m.engine.Scheduler().Status()
	glyph, glyphStyle := schedulerIndicator(status)

	view := "flat"
	if m.hierarchical {
		view = "tree"
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %d processes | %s view | last update %s | ", m.ProcessCount(), view, updateText))

	return HeaderStyle.Render(title + stats + glyphStyle.Render(glyph+" "+status))
}

// renderMetricsPanel renders the host CPU, memory, disk and network summary.
func (m Model) renderMetricsPanel() string {
	s := m.snapshot

	mem := ""
	if s.MemoryTotal > 0 {
		mem = LabelStyle.Render(fmt.Sprintf(" %s / %s", humanize.IBytes(s.MemoryUsed), humanize.IBytes(s.MemoryTotal)))
	}

	line1 := LabelStyle.Render("CPU  ") + ui.RenderBar(s.CPUPercent, barWidth) +
		"   " + LabelStyle.Render("Mem  ") + ui.RenderBar(s.MemoryPercent, barWidth) + mem
	line2 := LabelStyle.Render("Disk ") + ui.RenderBar(s.DiskPercent, barWidth) +
		"   " + LabelStyle.Render("Net  ") +
		ValueStyle.Render(fmt.Sprintf("sent %.2f MB, received %.2f MB", s.NetSentMB(), s.NetRecvMB()))

	return PanelStyle.Render(line1 + "\n" + line2)
}

// renderStatusLine renders the outcome of the last action.
func (m Model) renderStatusLine() string {
	if m.status == "" {
		return ""
	}
	switch m.statusLevel {
	case statusOK:
		return StatusOKStyle.Render(ui.SymbolSuccess + " " + m.status)
	case statusWarn:
		return StatusWarnStyle.Render(ui.SymbolWarning + " " + m.status)
	case statusError:
		return StatusErrorStyle.Render(ui.SymbolFail + " " + m.status)
	default:
		return StatusInfoStyle.Render(m.status)
	}
}

// renderPrompt renders the active modal prompt, if any.
func (m Model) renderPrompt() string {
	switch m.mode {
	case modeConfirmKill:
		name := m.pendingName
		if name == "" {
			name = "?"
		}
		text := fmt.Sprintf("Terminate pid %d (%s)", m.pendingKill, name)
		if m.pendingDesc > 0 {
			text += " and " + util.Count(m.pendingDesc, "descendant", "descendants")
		}
		return PromptStyle.Render(text + "? (y/n)")
	case modeSavePath:
		return PromptStyle.Render(m.pathInput.View())
	}
	return ""
}

// renderFooter renders the keyboard hints.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r refresh",
		"c continuous",
		"k kill",
		"s save",
		"1-4 sort",
		"t tree",
		"? help",
	}

	return FooterStyle.Render(strings.Join(hints, " | "))
}
