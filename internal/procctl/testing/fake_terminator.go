// Package testing provides test doubles for the procctl package.
package testing

import (
	"context"
	"fmt"
	"sync"
)

// FakeTerminator models a process table as parent links and records every
// terminate call in order.
type FakeTerminator struct {
	mu sync.Mutex

	children map[int32][]int32
	alive    map[int32]bool

	// Configuration
	FailPIDs      map[int32]error // Terminate returns this error for the pid
	DescendantErr error

	// Call tracking
	Calls []int32
}

// NewFakeTerminator creates a fake with the given live pids.
func NewFakeTerminator(pids ...int32) *FakeTerminator {
	f := &FakeTerminator{
		children: make(map[int32][]int32),
		alive:    make(map[int32]bool),
		FailPIDs: make(map[int32]error),
	}
	for _, p := range pids {
		f.alive[p] = true
	}
	return f
}

// AddChild registers child as a live child of parent.
func (f *FakeTerminator) AddChild(parent, child int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alive[parent] = true
	f.alive[child] = true
	f.children[parent] = append(f.children[parent], child)
}

// Alive reports whether pid has not been terminated.
func (f *FakeTerminator) Alive(pid int32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alive[pid]
}

// Descendants returns the registered descendants of pid, deepest first.
func (f *FakeTerminator) Descendants(ctx context.Context, pid int32) ([]int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DescendantErr != nil {
		return nil, f.DescendantErr
	}
	var out []int32
	var walk func(p int32)
	walk = func(p int32) {
		for _, c := range f.children[p] {
			walk(c)
			out = append(out, c)
		}
	}
	walk(pid)
	return out, nil
}

// Terminate records the call and marks pid dead.
func (f *FakeTerminator) Terminate(ctx context.Context, pid int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, pid)
	if err, ok := f.FailPIDs[pid]; ok {
		return err
	}
	if !f.alive[pid] {
		return fmt.Errorf("process %d not found", pid)
	}
	f.alive[pid] = false
	return nil
}
