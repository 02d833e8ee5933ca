package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sysmon/internal/procsort"
)

// KeyMap holds the dashboard key bindings.
type KeyMap struct {
	Quit       key.Binding
	Refresh    key.Binding
	Continuous key.Binding
	Kill       key.Binding
	Save       key.Binding
	SortPID    key.Binding
	SortName   key.Binding
	SortMemory key.Binding
	SortCPU    key.Binding
	Tree       key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Help       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q / Ctrl+C", "Quit")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Refresh once")),
		Continuous: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Toggle continuous updates")),
		Kill:       key.NewBinding(key.WithKeys("k", "delete"), key.WithHelp("k / Del", "Terminate selected process tree")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Save snapshot to log file")),
		SortPID:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Sort by PID")),
		SortName:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Sort by name")),
		SortMemory: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Sort by memory")),
		SortCPU:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "Sort by CPU")),
		Tree:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Toggle tree view")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("up", "Select previous")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down / j", "Select next")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "Page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "Page down")),
		Top:        key.NewBinding(key.WithKeys("home"), key.WithHelp("Home", "Select first")),
		Bottom:     key.NewBinding(key.WithKeys("end"), key.WithHelp("End", "Select last")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Toggle this help")),
		Confirm:    key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "Confirm")),
		Cancel:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n / Esc", "Cancel")),
	}
}

// helpBindings returns the bindings shown in the help overlay, in display order.
func (k KeyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Quit, k.Refresh, k.Continuous, k.Kill, k.Save,
		k.SortPID, k.SortName, k.SortMemory, k.SortCPU, k.Tree,
		k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Help,
	}
}

// sortColumn maps a key to the column it sorts by.
func (k KeyMap) sortColumn(msg tea.KeyMsg) (procsort.Column, bool) {
	switch {
	case key.Matches(msg, k.SortPID):
		return procsort.ByPID, true
	case key.Matches(msg, k.SortName):
		return procsort.ByName, true
	case key.Matches(msg, k.SortMemory):
		return procsort.ByMemory, true
	case key.Matches(msg, k.SortCPU):
		return procsort.ByCPU, true
	}
	return procsort.ByPID, false
}

// HandleKeyMsg processes keyboard input. Returns true if the key was handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch m.mode {
	case modeConfirmKill:
		return m.handleConfirmKey(msg)
	case modeSavePath:
		return m.handlePathKey(msg)
	}

	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && msg.String() == "esc" {
		m.showHelp = false
		return true, nil
	}

	if col, ok := m.keys.sortColumn(msg); ok {
		m.spec = m.spec.Toggle(col)
		m.render()
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.engine.Close()
		return true, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		if !m.engine.Scheduler().ManualTrigger() {
			m.setStatus(statusInfo, "continuous updates are on; refresh runs automatically")
		}
		return true, nil

	case key.Matches(msg, m.keys.Continuous):
		m.toggleContinuous()
		return true, nil

	case key.Matches(msg, m.keys.Kill):
		m.beginKill()
		return true, nil

	case key.Matches(msg, m.keys.Save):
		return true, m.beginSave()

	case key.Matches(msg, m.keys.Tree):
		m.hierarchical = !m.hierarchical
		m.render()
		return true, nil

	case key.Matches(msg, m.keys.Up):
		m.table.Move(-1)
		return true, nil

	case key.Matches(msg, m.keys.Down):
		m.table.Move(1)
		return true, nil

	case key.Matches(msg, m.keys.PageUp):
		m.table.Move(-m.table.PageSize())
		return true, nil

	case key.Matches(msg, m.keys.PageDown):
		m.table.Move(m.table.PageSize())
		return true, nil

	case key.Matches(msg, m.keys.Top):
		m.table.Top()
		return true, nil

	case key.Matches(msg, m.keys.Bottom):
		m.table.Bottom()
		return true, nil
	}

	return false, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeNormal
		return true, m.killCmd(m.pendingKill)
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.mode = modeNormal
		m.setStatus(statusInfo, "terminate cancelled")
		return true, nil
	}
	// Swallow everything else while the prompt is open
	return true, nil
}

func (m *Model) handlePathKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return true, m.submitSavePath()
	case "esc", "ctrl+c":
		m.mode = modeNormal
		m.pathInput.Blur()
		m.setStatus(statusInfo, "save cancelled")
		return true, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return true, cmd
}
