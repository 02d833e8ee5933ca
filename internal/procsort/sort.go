// Package procsort orders process samples by a user-selected column.
package procsort

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/proctree"
)

// Column identifies a sortable process table column.
type Column int

const (
	ByPID Column = iota
	ByName
	ByMemory
	ByCPU
)

// Columns lists every column in display order.
var Columns = []Column{ByPID, ByName, ByMemory, ByCPU}

// String returns the config name of the column.
func (c Column) String() string {
	switch c {
	case ByPID:
		return "pid"
	case ByName:
		return "name"
	case ByMemory:
		return "memory"
	case ByCPU:
		return "cpu"
	default:
		return fmt.Sprintf("column(%d)", int(c))
	}
}

// Title returns the header label for the column.
func (c Column) Title() string {
	switch c {
	case ByPID:
		return "PID"
	case ByName:
		return "Name"
	case ByMemory:
		return "Memory%"
	case ByCPU:
		return "CPU%"
	default:
		return c.String()
	}
}

// ParseColumn parses a config column name. Matching is case-insensitive.
func ParseColumn(s string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pid":
		return ByPID, nil
	case "name":
		return ByName, nil
	case "memory", "mem":
		return ByMemory, nil
	case "cpu":
		return ByCPU, nil
	}
	return ByPID, fmt.Errorf("unknown sort column %q", s)
}

// Direction is the sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection parses "asc"/"desc" (or the long forms).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort direction %q", s)
}

// Spec is the active sort column and direction.
type Spec struct {
	Column    Column
	Direction Direction
}

// DefaultSpec sorts by PID ascending.
func DefaultSpec() Spec {
	return Spec{Column: ByPID, Direction: Ascending}
}

// Toggle applies header-click semantics: the active column flips direction,
// any other column becomes active in ascending order.
func (s Spec) Toggle(col Column) Spec {
	if s.Column == col {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return s
	}
	return Spec{Column: col, Direction: Ascending}
}

// Indicator returns the arrow shown next to the active column title.
func (s Spec) Indicator() string {
	if s.Direction == Descending {
		return "▼"
	}
	return "▲"
}

// less compares on the active column only; ties are left to the stable sort.
func (s Spec) less(a, b metrics.ProcessSample) bool {
	switch s.Column {
	case ByName:
		return a.Name < b.Name
	case ByMemory:
		return a.MemoryPercent < b.MemoryPercent
	case ByCPU:
		return a.CPUPercent < b.CPUPercent
	default:
		return a.PID < b.PID
	}
}

// Sort returns a new slice ordered by spec. Samples that compare equal keep
// their input order in both directions.
func Sort(samples []metrics.ProcessSample, spec Spec) []metrics.ProcessSample {
	out := make([]metrics.ProcessSample, len(samples))
	copy(out, samples)

	sort.SliceStable(out, func(i, j int) bool {
		if spec.Direction == Descending {
			return spec.less(out[j], out[i])
		}
		return spec.less(out[i], out[j])
	})
	return out
}

// SortTree returns a copy of tree with the roots sorted and each parent's
// children sorted within their own group. Children never move across parents.
func SortTree(tree proctree.Tree, spec Spec) proctree.Tree {
	sorted := tree
	sorted.Roots = Sort(tree.Roots, spec)
	sorted.Children = make(map[int32][]metrics.ProcessSample, len(tree.Children))
	for ppid, kids := range tree.Children {
		sorted.Children[ppid] = Sort(kids, spec)
	}
	return sorted
}
