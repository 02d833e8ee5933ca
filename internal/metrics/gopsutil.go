package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// DefaultCPUWindow is how long SampleSystem measures CPU usage.
const DefaultCPUWindow = time.Second

// trackedProcess keeps a gopsutil handle alive between cycles so per-process
// CPU percent is measured over the cycle interval instead of since process start.
type trackedProcess struct {
	proc       *process.Process
	createTime int64
}

// GopsutilProvider implements Provider for the local host using gopsutil.
type GopsutilProvider struct {
	diskPath  string
	cpuWindow time.Duration
	log       logger.Logger

	mu      sync.Mutex
	tracked map[int32]trackedProcess
}

// NewGopsutilProvider creates a provider that reports disk usage for diskPath.
func NewGopsutilProvider(diskPath string, log logger.Logger) *GopsutilProvider {
	if diskPath == "" {
		diskPath = "/"
	}
	if log == nil {
		log = logger.Noop()
	}
	return &GopsutilProvider{
		diskPath:  diskPath,
		cpuWindow: DefaultCPUWindow,
		log:       log,
		tracked:   make(map[int32]trackedProcess),
	}
}

// SetCPUWindow overrides the CPU measurement window.
func (p *GopsutilProvider) SetCPUWindow(d time.Duration) {
	p.cpuWindow = d
}

// SampleSystem reads CPU, memory, disk, and network counters.
// Blocks for the CPU measurement window.
func (p *GopsutilProvider) SampleSystem(ctx context.Context) (SystemSnapshot, error) {
	snap := SystemSnapshot{}

	cpuPcts, err := cpu.PercentWithContext(ctx, p.cpuWindow, false)
	if err != nil {
		return snap, errors.WrapWithCode(err, errors.ErrSample, "Failed to read CPU usage", "")
	}
	if len(cpuPcts) > 0 {
		snap.CPUPercent = cpuPcts[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return snap, errors.WrapWithCode(err, errors.ErrSample, "Failed to read memory usage", "")
	}
	snap.MemoryPercent = vm.UsedPercent
	snap.MemoryUsed = vm.Used
	snap.MemoryTotal = vm.Total

	usage, err := disk.UsageWithContext(ctx, p.diskPath)
	if err != nil {
		return snap, errors.WrapWithCode(err, errors.ErrSample,
			"Failed to read disk usage for "+p.diskPath,
			"Set disk_path in the config to an existing mount point")
	}
	snap.DiskPercent = usage.UsedPercent

	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return snap, errors.WrapWithCode(err, errors.ErrSample, "Failed to read network counters", "")
	}
	if len(counters) > 0 {
		snap.NetBytesSent = counters[0].BytesSent
		snap.NetBytesRecv = counters[0].BytesRecv
	}

	snap.Timestamp = time.Now()
	return snap, nil
}

// EnumerateProcesses lists all running processes. A failure to list the
// process table at all is an error; failures reading individual processes
// are filtered out.
func (p *GopsutilProvider) EnumerateProcesses(ctx context.Context) ([]ProcessSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSample, "Failed to list processes", "")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[int32]trackedProcess, len(procs))
	reads := make([]ProcessRead, 0, len(procs))

	for _, proc := range procs {
		tp := p.track(ctx, proc)
		seen[proc.Pid] = tp
		reads = append(reads, readProcess(ctx, tp.proc))
	}

	// Forget processes that are gone so the cache doesn't grow without bound.
	p.tracked = seen

	samples, dropped := Filter(reads)
	if dropped > 0 {
		p.log.Debug("dropped %d of %d processes (exited or access denied)", dropped, len(reads))
	}
	return samples, nil
}

// track returns the cached handle for proc's pid, replacing it when the pid
// was reused by a new process.
func (p *GopsutilProvider) track(ctx context.Context, proc *process.Process) trackedProcess {
	created, _ := proc.CreateTimeWithContext(ctx)
	if prev, ok := p.tracked[proc.Pid]; ok && prev.createTime == created {
		return prev
	}
	return trackedProcess{proc: proc, createTime: created}
}

func readProcess(ctx context.Context, proc *process.Process) ProcessRead {
	name, err := proc.NameWithContext(ctx)
	if err != nil {
		return ProcessRead{Err: err}
	}
	ppid, err := proc.PpidWithContext(ctx)
	if err != nil {
		return ProcessRead{Err: err}
	}
	memPct, err := proc.MemoryPercentWithContext(ctx)
	if err != nil {
		return ProcessRead{Err: err}
	}
	// First call for a handle returns 0 and primes the delta.
	cpuPct, err := proc.PercentWithContext(ctx, 0)
	if err != nil {
		return ProcessRead{Err: err}
	}

	return ProcessRead{Sample: ProcessSample{
		PID:           proc.Pid,
		Name:          name,
		PPID:          ppid,
		MemoryPercent: float64(memPct),
		CPUPercent:    cpuPct,
	}}
}
