// Package scheduler decides when a refresh cycle runs.
//
// A cycle is launched through a callback and reported finished with Complete.
// The scheduler guarantees at most one cycle is in flight at a time and that
// continuous mode is strictly sequential: the next cycle is only timed once
// the previous one has completed.
//
// State transitions:
//
//	Idle       --ManualTrigger--> Manual --Complete--> Idle
//	Idle       --ToggleOn-------> Continuous (cycle launched now)
//	Manual     --ToggleOn-------> Continuous (next cycle timed on completion)
//	Continuous --Complete-------> Continuous (next cycle after interval)
//	Continuous --ToggleOff------> Idle (after the in-flight cycle completes)
//
// ManualTrigger is a no-op while Continuous. ToggleOff never interrupts a
// running cycle; it only suppresses scheduling of the next one.
package scheduler

import (
	"sync"
	"time"

	"github.com/rileyhilliard/sysmon/internal/logger"
)

// DefaultInterval is the delay between continuous cycles.
const DefaultInterval = time.Second

// State is the scheduler mode.
type State int

const (
	Idle State = iota
	Manual
	Continuous
)

func (s State) String() string {
	switch s {
	case Manual:
		return "manual"
	case Continuous:
		return "continuous"
	default:
		return "idle"
	}
}

// Scheduler owns the refresh timing. Methods are safe for concurrent use.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	launch   func()
	log      logger.Logger

	state    State
	inFlight bool
	stopping bool // ToggleOff requested while a continuous cycle runs
	pending  bool // Kick requested while a cycle runs
	closed   bool

	timer *time.Timer
	gen   uint64 // invalidates timers that fire after being replaced
}

// New creates an idle scheduler. launch starts one cycle and must not block;
// the cycle reports back through Complete.
func New(interval time.Duration, launch func(), log logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Scheduler{interval: interval, launch: launch, log: log}
}

// State returns the current mode.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// InFlight reports whether a cycle is running.
func (s *Scheduler) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Status returns a short label for display: idle, refreshing, live or stopping.
func (s *Scheduler) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.state == Continuous && s.stopping:
		return "stopping"
	case s.state == Continuous:
		return "live"
	case s.inFlight:
		return "refreshing"
	default:
		return "idle"
	}
}

// Interval returns the delay between continuous cycles.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// ManualTrigger runs a single cycle. It is accepted only when Idle.
func (s *Scheduler) ManualTrigger() bool {
	s.mu.Lock()
	if s.closed || s.state != Idle {
		state := s.state
		s.mu.Unlock()
		s.log.Debug("manual refresh ignored in %s state", state)
		return false
	}
	s.state = Manual
	s.beginLocked()
	s.mu.Unlock()

	s.launch()
	return true
}

// ToggleOn enters continuous mode. Repeated calls while Continuous are no-ops,
// except that a pending ToggleOff is withdrawn.
func (s *Scheduler) ToggleOn() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}

	switch s.state {
	case Continuous:
		changed := s.stopping
		s.stopping = false
		s.mu.Unlock()
		return changed
	case Manual:
		// The running one-shot cycle becomes the first continuous cycle.
		s.state = Continuous
		s.mu.Unlock()
		return true
	}

	s.state = Continuous
	s.beginLocked()
	s.mu.Unlock()

	s.launch()
	return true
}

// ToggleOff leaves continuous mode. A running cycle finishes normally and
// the scheduler goes Idle on its completion.
func (s *Scheduler) ToggleOff() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Continuous || s.stopping {
		return false
	}
	if s.inFlight {
		s.stopping = true
		return true
	}
	s.cancelTimerLocked()
	s.state = Idle
	s.pending = false
	return true
}

// Kick requests an immediate cycle, used after terminating processes.
// From Idle it behaves like ManualTrigger. While Continuous and waiting on
// the timer the next cycle starts now. While a cycle runs the request is
// deferred until it completes.
func (s *Scheduler) Kick() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}

	if s.inFlight {
		s.pending = true
		s.mu.Unlock()
		return true
	}

	if s.state == Idle {
		s.state = Manual
	} else {
		s.cancelTimerLocked()
	}
	s.beginLocked()
	s.mu.Unlock()

	s.launch()
	return true
}

// Complete reports that the running cycle finished, successfully or not.
// It is ignored when no cycle is in flight.
func (s *Scheduler) Complete() {
	s.mu.Lock()
	if !s.inFlight {
		s.mu.Unlock()
		s.log.Debug("complete called with no cycle in flight")
		return
	}
	s.inFlight = false

	if s.closed {
		s.state = Idle
		s.mu.Unlock()
		return
	}

	relaunch := false
	switch s.state {
	case Manual:
		if s.pending {
			s.pending = false
			relaunch = true
		} else {
			s.state = Idle
		}
	case Continuous:
		switch {
		case s.stopping:
			s.stopping = false
			s.pending = false
			s.state = Idle
		case s.pending:
			s.pending = false
			relaunch = true
		default:
			s.scheduleLocked()
		}
	}

	if relaunch {
		s.beginLocked()
	}
	s.mu.Unlock()

	if relaunch {
		s.launch()
	}
}

// Close stops the timer. No further cycles are launched.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancelTimerLocked()
	if !s.inFlight {
		s.state = Idle
	}
}

func (s *Scheduler) beginLocked() {
	s.inFlight = true
}

func (s *Scheduler) scheduleLocked() {
	s.cancelTimerLocked()
	gen := s.gen
	s.timer = time.AfterFunc(s.interval, func() { s.fire(gen) })
}

func (s *Scheduler) cancelTimerLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.state != Continuous || s.inFlight {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.beginLocked()
	s.mu.Unlock()

	s.launch()
}
