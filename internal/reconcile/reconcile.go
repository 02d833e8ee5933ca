// Package reconcile applies freshly sorted process rows onto the persistent
// process table while keeping the user's selection pinned to a pid.
//
// Row order is unstable across refreshes, so selection is never tracked by
// row index. Every Apply fully replaces the rows and then re-locates the
// selected pid; if the process is gone nothing is selected.
package reconcile

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sysmon/internal/procsort"
	"github.com/rileyhilliard/sysmon/internal/proctree"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// Column widths for the process table.
const (
	PIDWidth    = 8
	NameWidth   = 34
	MemoryWidth = 10
	CPUWidth    = 8
)

// Row is one display row bound to the pid it represents.
type Row struct {
	PID   int32
	Cells table.Row
}

// BuildRows converts flattened tree entries to display rows. Tree glyphs are
// prepended to the name cell.
func BuildRows(entries []proctree.Entry) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			PID: e.Sample.PID,
			Cells: table.Row{
				strconv.FormatInt(int64(e.Sample.PID), 10),
				e.Prefix + e.Sample.Name,
				fmt.Sprintf("%.2f", e.Sample.MemoryPercent),
				fmt.Sprintf("%.2f", e.Sample.CPUPercent),
			},
		}
	}
	return rows
}

// Headers returns the table columns with the active sort column marked.
func Headers(spec procsort.Spec) []table.Column {
	widths := map[procsort.Column]int{
		procsort.ByPID:    PIDWidth,
		procsort.ByName:   NameWidth,
		procsort.ByMemory: MemoryWidth,
		procsort.ByCPU:    CPUWidth,
	}
	cols := make([]table.Column, 0, len(procsort.Columns))
	for _, c := range procsort.Columns {
		title := c.Title()
		if c == spec.Column {
			title += " " + spec.Indicator()
		}
		cols = append(cols, table.Column{Title: title, Width: widths[c]})
	}
	return cols
}

// Reconciler owns the process table and the pid-based selection.
// It is not safe for concurrent use; only the interaction loop touches it.
type Reconciler struct {
	table    table.Model
	rows     []Row
	selected int32
	has      bool
	styles   ui.TableStyles
}

// New creates a reconciler with an empty table of the given visible height.
func New(height int) *Reconciler {
	r := &Reconciler{styles: ui.ProcessTableStyles()}
	r.table = ui.NewTable(nil, nil)
	r.table.SetColumns(Headers(procsort.DefaultSpec()))
	r.table.SetHeight(height)
	r.table.Focus()
	r.applyStyles()
	return r
}

// Apply replaces every row and restores the selection by pid.
func (r *Reconciler) Apply(rows []Row, spec procsort.Spec) {
	r.table.SetColumns(Headers(spec))

	r.rows = rows
	cells := make([]table.Row, len(rows))
	for i, row := range rows {
		cells[i] = row.Cells
	}
	r.table.SetRows(cells)

	if r.has {
		if idx := r.indexOf(r.selected); idx >= 0 {
			r.table.SetCursor(idx)
		} else {
			r.has = false
			r.selected = 0
			r.table.SetCursor(0)
		}
	}
	r.applyStyles()
}

// SetSpec refreshes the header titles without touching the rows.
func (r *Reconciler) SetSpec(spec procsort.Spec) {
	r.table.SetColumns(Headers(spec))
}

// Selected returns the selected pid, if any.
func (r *Reconciler) Selected() (int32, bool) {
	return r.selected, r.has
}

// Select pins the selection to pid. It reports false when no row shows pid.
func (r *Reconciler) Select(pid int32) bool {
	idx := r.indexOf(pid)
	if idx < 0 {
		return false
	}
	r.selected, r.has = pid, true
	r.table.SetCursor(idx)
	r.applyStyles()
	return true
}

// Clear drops the selection.
func (r *Reconciler) Clear() {
	r.selected, r.has = 0, false
	r.applyStyles()
}

// Cursor returns the row index of the selection, or -1 when nothing is selected.
func (r *Reconciler) Cursor() int {
	if !r.has {
		return -1
	}
	return r.table.Cursor()
}

// Rows returns the rows currently displayed.
func (r *Reconciler) Rows() []Row {
	return r.rows
}

// Move shifts the selection by delta rows. With nothing selected the first
// move selects the top row.
func (r *Reconciler) Move(delta int) {
	if len(r.rows) == 0 {
		return
	}
	if !r.has {
		r.table.GotoTop()
	} else if delta < 0 {
		r.table.MoveUp(-delta)
	} else if delta > 0 {
		r.table.MoveDown(delta)
	}
	r.syncFromCursor()
}

// Top selects the first row.
func (r *Reconciler) Top() {
	if len(r.rows) == 0 {
		return
	}
	r.table.GotoTop()
	r.syncFromCursor()
}

// Bottom selects the last row.
func (r *Reconciler) Bottom() {
	if len(r.rows) == 0 {
		return
	}
	r.table.GotoBottom()
	r.syncFromCursor()
}

// PageSize returns the number of visible rows.
func (r *Reconciler) PageSize() int {
	if h := r.table.Height(); h > 1 {
		return h - 1
	}
	return 1
}

// SetSize resizes the table viewport.
func (r *Reconciler) SetSize(width, height int) {
	r.table.SetWidth(width)
	r.table.SetHeight(height)
}

// View renders the table.
func (r *Reconciler) View() string {
	return r.table.View()
}

func (r *Reconciler) syncFromCursor() {
	idx := r.table.Cursor()
	if idx < 0 || idx >= len(r.rows) {
		r.Clear()
		return
	}
	r.selected, r.has = r.rows[idx].PID, true
	r.applyStyles()
}

func (r *Reconciler) indexOf(pid int32) int {
	for i, row := range r.rows {
		if row.PID == pid {
			return i
		}
	}
	return -1
}

// applyStyles hides the cursor highlight when nothing is selected; the table
// widget always keeps its cursor on some row.
func (r *Reconciler) applyStyles() {
	s := table.DefaultStyles()
	s.Header = r.styles.Header
	s.Cell = r.styles.Cell
	if r.has {
		s.Selected = r.styles.Selected
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	r.table.SetStyles(s)
}
