package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/procsort"
	"github.com/rileyhilliard/sysmon/internal/proctree"
	"github.com/rileyhilliard/sysmon/internal/reconcile"
	"github.com/rileyhilliard/sysmon/internal/scheduler"
	"github.com/rileyhilliard/sysmon/internal/snapshot"
	"github.com/rileyhilliard/sysmon/internal/util"
)

// Layout rows reserved around the process table.
const (
	headerHeight = 1
	panelHeight  = 4 // two metric lines plus border
	footerHeight = 3 // status, prompt, hints
	defaultRows  = 20
)

// Options configures the initial dashboard state.
type Options struct {
	Hierarchical bool
	Continuous   bool
	Spec         procsort.Spec
}

// Model is the Bubble Tea model for the process monitor. It runs on the
// interaction loop: display rows, selection and the sort spec are only ever
// touched from Update.
type Model struct {
	engine *Engine
	keys   KeyMap
	table  *reconcile.Reconciler

	spec         procsort.Spec
	hierarchical bool
	continuous   bool // start in continuous mode

	// Latest cycle
	snapshot   metrics.SystemSnapshot
	tree       proctree.Tree
	flat       proctree.Tree
	hasData    bool
	lastUpdate time.Time
	lastErr    error

	mode          inputMode
	pendingKill   int32
	pendingName   string
	pendingDesc   int
	pathInput     textinput.Model
	status        string
	statusLevel   statusLevel
	showHelp      bool
	width, height int
	quitting      bool
	now           func() time.Time
}

// NewModel creates a dashboard driven by engine.
func NewModel(engine *Engine, opts Options) Model {
	input := textinput.New()
	input.Placeholder = snapshot.DefaultFileName
	input.Prompt = "Save to: "
	input.CharLimit = 1024

	m := Model{
		engine:       engine,
		keys:         DefaultKeyMap(),
		table:        reconcile.New(defaultRows),
		spec:         opts.Spec,
		hierarchical: opts.Hierarchical,
		continuous:   opts.Continuous,
		pathInput:    input,
		now:          time.Now,
	}
	m.table.SetSpec(m.spec)
	return m
}

// Init starts the header clock and the first refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.startCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		rows := m.height - headerHeight - panelHeight - footerHeight
		if rows < 3 {
			rows = 3
		}
		m.table.SetSize(m.width, rows)
		m.pathInput.Width = m.width - len(m.pathInput.Prompt) - 4

	case tickMsg:
		return m, m.tickCmd()

	case cycleMsg:
		m.applyCycle(Cycle(msg))
		// Reconciliation is done; the scheduler may time the next cycle.
		m.engine.Scheduler().Complete()

	case killDoneMsg:
		m.applyKillReport(msg)

	case saveDoneMsg:
		m.applySaveResult(msg)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	base := m.renderDashboard()
	if m.showHelp {
		return m.renderHelpOverlay(base)
	}
	return base
}

// tickCmd returns a command that sends a tick after one second.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startCmd kicks off the first cycle in the configured mode.
func (m Model) startCmd() tea.Cmd {
	sched := m.engine.Scheduler()
	continuous := m.continuous
	return func() tea.Msg {
		if continuous {
			sched.ToggleOn()
		} else {
			sched.ManualTrigger()
		}
		return nil
	}
}

func (m *Model) applyCycle(c Cycle) {
	if c.Err != nil {
		m.lastErr = c.Err
		m.setStatus(statusError, "refresh failed: "+util.OneLine(c.Err.Error()))
		return
	}
	m.lastErr = nil
	m.snapshot = c.Snapshot
	m.tree = c.Tree
	m.flat = c.Flat
	m.hasData = true
	m.lastUpdate = m.now()
	m.render()
}

// render sorts the latest tree by the active spec and reconciles it onto the table.
func (m *Model) render() {
	m.table.Apply(reconcile.BuildRows(m.displayTree().Flatten()), m.spec)
}

// displayTree returns the latest tree in the current grouping mode, sorted.
func (m Model) displayTree() proctree.Tree {
	src := m.flat
	if m.hierarchical {
		src = m.tree
	}
	return procsort.SortTree(src, m.spec)
}

// displayedSamples returns the processes in the order they are displayed.
func (m Model) displayedSamples() []metrics.ProcessSample {
	return m.displayTree().Samples()
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.status = text
	m.statusLevel = level
}

func (m *Model) toggleContinuous() {
	sched := m.engine.Scheduler()
	if sched.State() == scheduler.Continuous && sched.Status() != "stopping" {
		sched.ToggleOff()
		m.setStatus(statusInfo, "continuous updates off")
		return
	}
	sched.ToggleOn()
	m.setStatus(statusInfo, fmt.Sprintf("continuous updates every %s", sched.Interval()))
}

func (m *Model) beginKill() {
	pid, ok := m.table.Selected()
	if !ok {
		m.setStatus(statusInfo, "select a process first")
		return
	}
	m.pendingKill = pid
	m.pendingName = ""
	for _, row := range m.table.Rows() {
		if row.PID == pid && len(row.Cells) > 1 {
			m.pendingName = strings.TrimLeft(row.Cells[1], "│├└─ ")
		}
	}
	m.pendingDesc = len(m.tree.Descendants(pid))
	m.mode = modeConfirmKill
}

func (m Model) killCmd(pid int32) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		return killDoneMsg{report: engine.terminate(pid)}
	}
}

func (m *Model) applyKillReport(msg killDoneMsg) {
	r := msg.report
	switch {
	case r.Skipped():
		m.setStatus(statusInfo, r.Summary())
	case len(r.Warnings) > 0:
		parts := make([]string, 0, len(r.Warnings))
		for _, w := range r.Warnings {
			parts = append(parts, w.String())
		}
		m.setStatus(statusWarn, r.Summary()+": "+strings.Join(parts, "; "))
	default:
		m.setStatus(statusOK, r.Summary())
	}
}

// beginSave saves to the session path, or opens the path prompt on first use.
func (m *Model) beginSave() tea.Cmd {
	if !m.hasData {
		m.setStatus(statusInfo, "nothing to save yet")
		return nil
	}
	if m.engine.Writer().Path() == "" {
		m.mode = modeSavePath
		m.pathInput.SetValue("")
		return m.pathInput.Focus()
	}
	return m.saveCmd()
}

func (m *Model) submitSavePath() tea.Cmd {
	path := strings.TrimSpace(m.pathInput.Value())
	m.mode = modeNormal
	m.pathInput.Blur()
	if path == "" {
		m.setStatus(statusInfo, "save cancelled")
		return nil
	}
	m.engine.Writer().SetPath(config.ExpandPath(path))
	return m.saveCmd()
}

func (m Model) saveCmd() tea.Cmd {
	engine := m.engine
	snap := m.snapshot
	procs := m.displayedSamples()
	now := m.now()
	return func() tea.Msg {
		err := engine.save(snap, procs, now)
		return saveDoneMsg{path: engine.Writer().Path(), err: err}
	}
}

func (m *Model) applySaveResult(msg saveDoneMsg) {
	switch {
	case msg.err == nil:
		m.setStatus(statusOK, "snapshot appended to "+msg.path)
	case errors.IsCancelled(msg.err):
		m.setStatus(statusInfo, "save cancelled")
	default:
		// A path that cannot be written is forgotten so the next save prompts again.
		m.engine.Writer().SetPath("")
		m.setStatus(statusError, util.OneLine(msg.err.Error()))
	}
}

// Selected returns the selected pid, if any.
func (m Model) Selected() (int32, bool) {
	return m.table.Selected()
}

// Spec returns the active sort spec.
func (m Model) Spec() procsort.Spec {
	return m.spec
}

// Hierarchical reports whether the tree view is on.
func (m Model) Hierarchical() bool {
	return m.hierarchical
}

// StatusText returns the current status line text.
func (m Model) StatusText() string {
	return m.status
}

// ProcessCount returns the number of processes in the latest cycle.
func (m Model) ProcessCount() int {
	return m.flat.Len()
}

// SecondsSinceUpdate returns seconds since the last successful cycle.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(m.now().Sub(m.lastUpdate).Seconds())
}
