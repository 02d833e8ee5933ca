package monitor

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/procctl"
	"github.com/rileyhilliard/sysmon/internal/proctree"
	"github.com/rileyhilliard/sysmon/internal/scheduler"
	"github.com/rileyhilliard/sysmon/internal/snapshot"
)

// Cycle is the immutable result of one worker pass. It is handed to the
// interaction loop and never modified afterwards.
type Cycle struct {
	Snapshot metrics.SystemSnapshot
	Tree     proctree.Tree // hierarchical grouping
	Flat     proctree.Tree // every process a root
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Pipeline samples the provider and groups the process list.
type Pipeline struct {
	provider metrics.Provider
	log      logger.Logger
}

// NewPipeline creates a pipeline over provider.
func NewPipeline(provider metrics.Provider, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Noop()
	}
	return &Pipeline{provider: provider, log: log}
}

// Run performs one sample and group pass. It blocks for as long as the
// provider does (about a second for the gopsutil CPU window).
func (p *Pipeline) Run(ctx context.Context) Cycle {
	c := Cycle{Started: time.Now()}

	snap, err := p.provider.SampleSystem(ctx)
	if err != nil {
		c.Err = err
		c.Duration = time.Since(c.Started)
		return c
	}

	procs, err := p.provider.EnumerateProcesses(ctx)
	if err != nil {
		c.Err = err
		c.Duration = time.Since(c.Started)
		return c
	}

	c.Snapshot = snap
	c.Tree = proctree.Build(procs, true)
	c.Flat = proctree.Build(procs, false)
	c.Duration = time.Since(c.Started)
	p.log.Debug("cycle sampled %d processes in %s", len(procs), c.Duration)
	return c
}

// Engine connects the scheduler to the worker pipeline and hands results to
// the Bubble Tea program. Model values share one Engine.
type Engine struct {
	pipeline   *Pipeline
	sched      *scheduler.Scheduler
	controller *procctl.Controller
	writer     *snapshot.Writer
	log        logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	send func(tea.Msg)
}

// EngineOptions configures NewEngine.
type EngineOptions struct {
	Provider   metrics.Provider
	Terminator procctl.Terminator
	Writer     *snapshot.Writer
	Interval   time.Duration
	Logger     logger.Logger
}

// NewEngine wires the pipeline, scheduler, process controller and snapshot writer.
func NewEngine(opts EngineOptions) *Engine {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	e := &Engine{
		pipeline: NewPipeline(opts.Provider, log),
		writer:   opts.Writer,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	e.sched = scheduler.New(opts.Interval, e.launch, log)
	e.controller = procctl.NewController(opts.Terminator, log, func() { e.sched.Kick() })
	if e.writer == nil {
		e.writer = snapshot.NewWriter(nil, "")
	}
	return e
}

// Attach sets the function used to deliver cycle results, typically
// (*tea.Program).Send.
func (e *Engine) Attach(send func(tea.Msg)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.send = send
}

// Scheduler returns the update scheduler.
func (e *Engine) Scheduler() *scheduler.Scheduler {
	return e.sched
}

// Writer returns the snapshot writer.
func (e *Engine) Writer() *snapshot.Writer {
	return e.writer
}

// Close stops scheduling and cancels any in-flight sample.
func (e *Engine) Close() {
	e.sched.Close()
	e.cancel()
}

// launch runs one cycle on its own goroutine. The scheduler calls it with a
// guarantee that no other cycle is in flight.
func (e *Engine) launch() {
	go func() {
		c := e.pipeline.Run(e.ctx)
		if c.Err != nil {
			e.log.Warn("refresh cycle failed: %v", c.Err)
		}
		e.deliver(cycleMsg(c))
	}()
}

func (e *Engine) deliver(msg tea.Msg) {
	e.mu.Lock()
	send := e.send
	e.mu.Unlock()

	if send == nil {
		// Nobody to reconcile the result; keep the scheduler consistent.
		e.log.Debug("cycle dropped: no receiver attached")
		e.sched.Complete()
		return
	}
	send(msg)
}

// terminate runs the process controller. Called from a tea.Cmd goroutine.
func (e *Engine) terminate(pid int32) procctl.Report {
	return e.controller.Terminate(e.ctx, pid)
}

// save appends a snapshot block. Called from a tea.Cmd goroutine.
func (e *Engine) save(snap metrics.SystemSnapshot, procs []metrics.ProcessSample, now time.Time) error {
	return e.writer.Append(snap, procs, now)
}
