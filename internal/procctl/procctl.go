// Package procctl terminates a process together with its descendants.
package procctl

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/util"
)

// ErrNotRunning is returned by Terminator.Descendants when pid itself no
// longer exists.
var ErrNotRunning = stderrors.New("process not running")

// Terminator finds and terminates live processes.
type Terminator interface {
	// Descendants returns the live descendants of pid, deepest first.
	Descendants(ctx context.Context, pid int32) ([]int32, error)
	// Terminate asks the OS to terminate pid.
	Terminate(ctx context.Context, pid int32) error
}

// Warning is a non-fatal per-process termination failure.
type Warning struct {
	PID int32
	Err error
}

func (w Warning) String() string {
	return fmt.Sprintf("pid %d: %v", w.PID, w.Err)
}

// Report describes the outcome of one Terminate request.
type Report struct {
	Target    int32
	Attempted []int32 // in call order, descendants before the target
	Warnings  []Warning
	failures  int
}

// Skipped reports whether nothing was attempted.
func (r Report) Skipped() bool {
	return len(r.Attempted) == 0
}

// Succeeded returns the number of terminate calls that did not fail.
func (r Report) Succeeded() int {
	return len(r.Attempted) - r.failures
}

// Summary is a one-line description for status output.
func (r Report) Summary() string {
	switch {
	case r.Skipped():
		return "no process selected"
	case len(r.Warnings) == 0:
		return fmt.Sprintf("terminated pid %d (%s)", r.Target, util.Count(len(r.Attempted), "process", "processes"))
	default:
		return fmt.Sprintf("terminated %d of %d processes for pid %d, %s",
			r.Succeeded(), len(r.Attempted), r.Target, util.Count(len(r.Warnings), "warning", "warnings"))
	}
}

// Controller cascades termination from a pid to its descendants.
type Controller struct {
	term      Terminator
	log       logger.Logger
	onRefresh func()
}

// NewController creates a controller. onRefresh, if set, is called after every
// request that attempted at least one termination.
func NewController(term Terminator, log logger.Logger, onRefresh func()) *Controller {
	if log == nil {
		log = logger.Noop()
	}
	return &Controller{term: term, log: log, onRefresh: onRefresh}
}

// Terminate requests termination of every live descendant of pid, deepest
// first, and then of pid itself. A pid <= 0 means no selection and is a no-op.
// Failures are collected as warnings and never stop the remaining calls.
func (c *Controller) Terminate(ctx context.Context, pid int32) Report {
	report := Report{Target: pid}
	if pid <= 0 {
		return report
	}

	descendants, err := c.term.Descendants(ctx, pid)
	switch {
	case stderrors.Is(err, ErrNotRunning):
		// The terminate attempt below reports the missing target.
		c.log.Debug("pid %d is not running", pid)
		descendants = nil
	case err != nil:
		// The target may still be terminable even if its children cannot be listed.
		c.log.Warn("list descendants of pid %d: %v", pid, err)
		report.Warnings = append(report.Warnings, Warning{
			PID: pid,
			Err: errors.WrapWithCode(err, errors.ErrTerminate, fmt.Sprintf("Failed to list children of pid %d", pid), ""),
		})
		descendants = nil
	}

	for _, target := range append(descendants, pid) {
		report.Attempted = append(report.Attempted, target)
		if err := c.term.Terminate(ctx, target); err != nil {
			c.log.Warn("terminate pid %d: %v", target, err)
			report.failures++
			report.Warnings = append(report.Warnings, Warning{PID: target, Err: err})
			continue
		}
		c.log.Debug("terminated pid %d", target)
	}

	if c.onRefresh != nil {
		c.onRefresh()
	}
	return report
}
