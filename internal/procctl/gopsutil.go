package procctl

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/rileyhilliard/sysmon/internal/errors"
)

// GopsutilTerminator terminates local processes through gopsutil.
type GopsutilTerminator struct{}

// NewGopsutilTerminator creates a terminator for the local host.
func NewGopsutilTerminator() *GopsutilTerminator {
	return &GopsutilTerminator{}
}

// Descendants walks the live child links of pid and returns them deepest first.
func (GopsutilTerminator) Descendants(ctx context.Context, pid int32) ([]int32, error) {
	root, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		if stderrors.Is(err, process.ErrorProcessNotRunning) {
			return nil, ErrNotRunning
		}
		return nil, err
	}

	var out []int32
	visited := map[int32]bool{pid: true}

	var walk func(p *process.Process) error
	walk = func(p *process.Process) error {
		children, err := p.ChildrenWithContext(ctx)
		if err != nil {
			if stderrors.Is(err, process.ErrorNoChildren) {
				return nil
			}
			return err
		}
		for _, child := range children {
			if visited[child.Pid] {
				continue
			}
			visited[child.Pid] = true
			// A child that exits mid-walk still gets a terminate attempt.
			_ = walk(child)
			out = append(out, child.Pid)
		}
		return nil
	}

	if err := walk(root); err != nil {
		return out, err
	}
	return out, nil
}

// Terminate sends the platform terminate request (SIGTERM on unix).
func (GopsutilTerminator) Terminate(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminate,
			fmt.Sprintf("Process %d no longer exists", pid), "")
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminate,
			fmt.Sprintf("Failed to terminate process %d", pid),
			"Check that you own the process or run with elevated privileges")
	}
	return nil
}

var _ Terminator = GopsutilTerminator{}
