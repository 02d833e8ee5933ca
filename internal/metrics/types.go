package metrics

import (
	"context"
	"time"
)

// ProcessSample is one process as seen by a single enumeration pass.
// Samples are rebuilt every cycle and never mutated after the pass returns.
type ProcessSample struct {
	PID           int32
	Name          string
	PPID          int32
	MemoryPercent float64
	CPUPercent    float64
}

// SystemSnapshot contains host-wide metrics for one cycle.
type SystemSnapshot struct {
	Timestamp     time.Time
	CPUPercent    float64
	MemoryPercent float64
	MemoryUsed    uint64
	MemoryTotal   uint64
	DiskPercent   float64
	NetBytesSent  uint64
	NetBytesRecv  uint64
}

// NetSentMB returns bytes sent in mebibytes.
func (s SystemSnapshot) NetSentMB() float64 {
	return float64(s.NetBytesSent) / (1024 * 1024)
}

// NetRecvMB returns bytes received in mebibytes.
func (s SystemSnapshot) NetRecvMB() float64 {
	return float64(s.NetBytesRecv) / (1024 * 1024)
}

// Provider reads host and process metrics from the operating system.
//
// SampleSystem may block for up to the CPU measurement window (about one
// second) and must never be called from the interaction thread.
// EnumerateProcesses is best-effort: processes that vanish or deny access
// mid-enumeration are dropped, never reported as an error.
type Provider interface {
	SampleSystem(ctx context.Context) (SystemSnapshot, error)
	EnumerateProcesses(ctx context.Context) ([]ProcessSample, error)
}

// ProcessRead is the outcome of reading a single process.
// Err is set when the process exited, became a zombie, or denied access.
type ProcessRead struct {
	Sample ProcessSample
	Err    error
}

// Filter keeps the successful reads in enumeration order and reports how many
// were dropped. Per-process failures are expected under concurrent system
// activity and are not surfaced as errors.
func Filter(reads []ProcessRead) (samples []ProcessSample, dropped int) {
	samples = make([]ProcessSample, 0, len(reads))
	for _, r := range reads {
		if r.Err != nil {
			dropped++
			continue
		}
		samples = append(samples, r.Sample)
	}
	return samples, dropped
}
