// Package testing provides test doubles for the metrics package.
package testing

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// FakeProvider serves scripted samples. Each EnumerateProcesses call consumes
// the next queued process list; once the queue is exhausted the last list repeats.
type FakeProvider struct {
	mu sync.Mutex

	// Configuration
	System       metrics.SystemSnapshot
	SystemErr    error
	EnumerateErr error
	Delay        time.Duration // simulated sampling cost

	queue [][]metrics.ProcessSample
	last  []metrics.ProcessSample

	// Call tracking
	SystemCalls    int
	EnumerateCalls int
	inFlight       int
	MaxInFlight    int
}

// NewFakeProvider creates a provider that returns procs on every call.
func NewFakeProvider(procs ...metrics.ProcessSample) *FakeProvider {
	return &FakeProvider{last: procs}
}

// Queue appends a process list to be returned by a future EnumerateProcesses call.
func (f *FakeProvider) Queue(procs ...metrics.ProcessSample) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, procs)
}

// SampleSystem returns the configured snapshot, stamping the current time.
func (f *FakeProvider) SampleSystem(ctx context.Context) (metrics.SystemSnapshot, error) {
	f.enter()
	defer f.leave()

	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return metrics.SystemSnapshot{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.SystemCalls++
	if f.SystemErr != nil {
		return metrics.SystemSnapshot{}, f.SystemErr
	}
	snap := f.System
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	return snap, nil
}

// EnumerateProcesses returns the next queued process list.
func (f *FakeProvider) EnumerateProcesses(ctx context.Context) ([]metrics.ProcessSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EnumerateCalls++
	if f.EnumerateErr != nil {
		return nil, f.EnumerateErr
	}
	if len(f.queue) > 0 {
		f.last = f.queue[0]
		f.queue = f.queue[1:]
	}
	out := make([]metrics.ProcessSample, len(f.last))
	copy(out, f.last)
	return out, nil
}

// Calls returns the number of SampleSystem and EnumerateProcesses calls so far.
func (f *FakeProvider) Calls() (system, enumerate int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SystemCalls, f.EnumerateCalls
}

// PeakConcurrency returns the highest number of overlapping SampleSystem calls observed.
func (f *FakeProvider) PeakConcurrency() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.MaxInFlight
}

func (f *FakeProvider) enter() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight++
	if f.inFlight > f.MaxInFlight {
		f.MaxInFlight = f.inFlight
	}
}

func (f *FakeProvider) leave() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
}

var _ metrics.Provider = (*FakeProvider)(nil)
