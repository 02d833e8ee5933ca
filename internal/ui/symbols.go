package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Action completed
	SymbolFail     = "✗" // Action failed
	SymbolWarning  = "⚠" // Partial failure
	SymbolIdle     = "○" // Scheduler idle
	SymbolProgress = "◐" // Refresh in flight
	SymbolLive     = "●" // Continuous updates on
)
