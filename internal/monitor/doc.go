// Package monitor implements the interactive process monitor TUI.
//
// The dashboard shows host CPU, memory, disk and network usage above a
// sortable process table that can be grouped as a parent/child tree.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: display state (table, selection, sort spec, prompts)
//   - Update: keystrokes, finished cycles, kill and save results
//   - View: renders the current state to a string
//
// # Key Components
//
//	Model    - The Bubble Tea model; the only writer of rows, selection and sort spec
//	Engine   - Owns the scheduler, process controller and snapshot writer
//	Pipeline - One worker pass: sample system, enumerate processes, build trees
//
// # Message Flow
//
// Sampling blocks for about a second, so it never runs inside Update:
//
//  1. The scheduler launches a cycle; Pipeline.Run executes on a goroutine
//  2. The finished Cycle is sent to the program as a cycleMsg
//  3. Update sorts and reconciles it onto the table, then calls Complete
//  4. In continuous mode Complete times the next cycle after the interval
//
// Only one cycle is ever in flight, and the next one cannot start before the
// previous one has been reconciled.
package monitor
