// Package snapshot appends the current metrics and process table to a text log.
//
// Each save appends one block:
//
//	=== Data saved at 2006-01-02 15:04:05 ===
//	CPU Usage: 12.5%
//	Memory Usage: 40.1%
//	Disk Usage: 71.0%
//	Network: Sent = 1.50 MB, Received = 20.25 MB
//
//	Running Processes:
//	   PID Name                       Memory%     CPU%
//	     1 init                          0.50     0.10
//
// Blocks are separated by a blank line. Existing content is never truncated.
package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// TimestampLayout is the block header time format.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultFileName is suggested when prompting for a path.
const DefaultFileName = "system_monitor_log.txt"

// Format writes one snapshot block to w. Processes are written in the given order.
func Format(w io.Writer, snap metrics.SystemSnapshot, procs []metrics.ProcessSample, now time.Time) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "=== Data saved at %s ===\n", now.Format(TimestampLayout))
	fmt.Fprintf(&b, "CPU Usage: %.1f%%\n", snap.CPUPercent)
	fmt.Fprintf(&b, "Memory Usage: %.1f%%\n", snap.MemoryPercent)
	fmt.Fprintf(&b, "Disk Usage: %.1f%%\n", snap.DiskPercent)
	fmt.Fprintf(&b, "Network: Sent = %.2f MB, Received = %.2f MB\n", snap.NetSentMB(), snap.NetRecvMB())

	b.WriteString("\nRunning Processes:\n")
	fmt.Fprintf(&b, "%6s %-25s %8s %8s\n", "PID", "Name", "Memory%", "CPU%")
	for _, p := range procs {
		fmt.Fprintf(&b, "%6d %-25s %8.2f %8.2f\n", p.PID, p.Name, p.MemoryPercent, p.CPUPercent)
	}

	_, err := w.Write(b.Bytes())
	return err
}

// Writer appends snapshot blocks to a log file. The path is chosen once and
// reused for the rest of the session.
type Writer struct {
	fs   afero.Fs
	mu   sync.Mutex
	path string
}

// NewWriter creates a writer on fs. An empty path means no file has been chosen yet.
func NewWriter(fs afero.Fs, path string) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs, path: path}
}

// Path returns the chosen log path, or "" if none has been chosen.
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// SetPath sets the log path for later saves.
func (w *Writer) SetPath(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.path = path
}

// Append writes one block to the chosen path, creating the file if needed.
// With no path chosen it returns errors.ErrSaveCancelled and touches nothing.
func (w *Writer) Append(snap metrics.SystemSnapshot, procs []metrics.ProcessSample, now time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.path == "" {
		return errors.ErrSaveCancelled
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrSnapshot,
				fmt.Sprintf("Failed to create directory %s", dir),
				"Choose a writable location for the snapshot log")
		}
	}

	f, err := w.fs.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSnapshot,
			fmt.Sprintf("Failed to open %s", w.path),
			"Choose a writable location for the snapshot log")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSnapshot,
			fmt.Sprintf("Failed to stat %s", w.path), "")
	}

	var block bytes.Buffer
	if info.Size() > 0 {
		block.WriteString("\n")
	}
	if err := Format(&block, snap, procs, now); err != nil {
		return errors.WrapWithCode(err, errors.ErrSnapshot, "Failed to format snapshot", "")
	}

	if _, err := f.Write(block.Bytes()); err != nil {
		return errors.WrapWithCode(err, errors.ErrSnapshot,
			fmt.Sprintf("Failed to write %s", w.path), "")
	}
	return nil
}
