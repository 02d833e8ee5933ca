// Package proctree groups a flat process enumeration into a parent/child hierarchy.
//
// A tree is rebuilt from scratch every cycle; no identity is carried between
// cycles, so a pid may move between positions as its ancestors come and go.
package proctree

import "github.com/rileyhilliard/sysmon/internal/metrics"

// Tree is a process hierarchy built from one enumeration pass.
// Roots are processes whose parent is not among the sampled pids (or every
// process, when hierarchical grouping is off). Children maps a parent pid to
// its direct children in enumeration order.
type Tree struct {
	Roots        []metrics.ProcessSample
	Children     map[int32][]metrics.ProcessSample
	Hierarchical bool
	size         int
}

// Entry is one display row produced by Flatten.
type Entry struct {
	Sample metrics.ProcessSample
	Depth  int
	Prefix string // tree glyphs, empty for roots
}

// Build groups samples by parent pid. When hierarchical is false every sample
// is a root and Children is empty. Empty input yields an empty tree.
func Build(samples []metrics.ProcessSample, hierarchical bool) Tree {
	t := Tree{
		Roots:        make([]metrics.ProcessSample, 0, len(samples)),
		Children:     make(map[int32][]metrics.ProcessSample),
		Hierarchical: hierarchical,
		size:         len(samples),
	}

	if !hierarchical {
		t.Roots = append(t.Roots, samples...)
		return t
	}

	present := make(map[int32]bool, len(samples))
	for _, s := range samples {
		present[s.PID] = true
	}

	for _, s := range samples {
		if s.PPID != s.PID && present[s.PPID] {
			t.Children[s.PPID] = append(t.Children[s.PPID], s)
			continue
		}
		t.Roots = append(t.Roots, s)
	}

	t.promoteUnreachable(samples)
	return t
}

// promoteUnreachable turns parent cycles into roots so that every sample is
// reachable exactly once from Roots.
func (t *Tree) promoteUnreachable(samples []metrics.ProcessSample) {
	reached := make(map[int32]bool, len(samples))
	var mark func(pid int32)
	mark = func(pid int32) {
		if reached[pid] {
			return
		}
		reached[pid] = true
		for _, c := range t.Children[pid] {
			mark(c.PID)
		}
	}
	for _, r := range t.Roots {
		mark(r.PID)
	}

	for _, s := range samples {
		if reached[s.PID] {
			continue
		}
		siblings := t.Children[s.PPID]
		for i := range siblings {
			if siblings[i].PID == s.PID {
				t.Children[s.PPID] = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
		if len(t.Children[s.PPID]) == 0 {
			delete(t.Children, s.PPID)
		}
		t.Roots = append(t.Roots, s)
		mark(s.PID)
	}
}

// Len returns the number of samples in the tree.
func (t Tree) Len() int {
	return t.size
}

// ChildrenOf returns the direct children of pid.
func (t Tree) ChildrenOf(pid int32) []metrics.ProcessSample {
	return t.Children[pid]
}

// Samples returns every sample, roots first followed by their subtrees (depth-first).
func (t Tree) Samples() []metrics.ProcessSample {
	entries := t.Flatten()
	out := make([]metrics.ProcessSample, len(entries))
	for i, e := range entries {
		out[i] = e.Sample
	}
	return out
}

// Flatten walks the tree depth-first in its current order and returns one
// entry per process. Children nest under their parent at every depth, so
// grandchildren stay visible beneath the child that spawned them.
func (t Tree) Flatten() []Entry {
	entries := make([]Entry, 0, t.size)
	visited := make(map[int32]bool, t.size)

	var walk func(s metrics.ProcessSample, depth int, prefix, indent string)
	walk = func(s metrics.ProcessSample, depth int, prefix, indent string) {
		if visited[s.PID] {
			return
		}
		visited[s.PID] = true
		entries = append(entries, Entry{Sample: s, Depth: depth, Prefix: prefix})

		kids := t.Children[s.PID]
		for i, c := range kids {
			last := i == len(kids)-1
			glyph, next := "├─ ", "│  "
			if last {
				glyph, next = "└─ ", "   "
			}
			walk(c, depth+1, indent+glyph, indent+next)
		}
	}

	for _, r := range t.Roots {
		walk(r, 0, "", "")
	}
	return entries
}

// Descendants returns every descendant of pid, deepest first.
func (t Tree) Descendants(pid int32) []int32 {
	var out []int32
	visited := map[int32]bool{pid: true}
	var walk func(p int32)
	walk = func(p int32) {
		for _, c := range t.Children[p] {
			if visited[c.PID] {
				continue
			}
			visited[c.PID] = true
			walk(c.PID)
			out = append(out, c.PID)
		}
	}
	walk(pid)
	return out
}
