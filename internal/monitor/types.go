package monitor

import (
	"time"

	"github.com/rileyhilliard/sysmon/internal/procctl"
)

// tickMsg drives the "last update" clock in the header. It never samples.
type tickMsg time.Time

// cycleMsg carries a finished worker cycle back to the interaction loop.
type cycleMsg Cycle

// killDoneMsg reports the outcome of a terminate request.
type killDoneMsg struct {
	report procctl.Report
}

// saveDoneMsg reports the outcome of a snapshot save.
type saveDoneMsg struct {
	path string
	err  error
}

// inputMode is the modal state of the dashboard.
type inputMode int

const (
	modeNormal inputMode = iota
	modeConfirmKill
	modeSavePath
)

// statusLevel selects the status line color.
type statusLevel int

const (
	statusInfo statusLevel = iota
	statusOK
	statusWarn
	statusError
)
