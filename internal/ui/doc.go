// Package ui provides the shared terminal styling for sysmon.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful actions, low load
//	ColorError     (red)    - Failures, high load
//	ColorWarning   (yellow) - Partial failures, moderate load
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - Selection highlight
//
// # Components
//
//	NewTable / ProcessTableStyles - Bubbles table with the process table styling
//	RenderSimpleTable             - Static table for plain command output
//	RenderBar                     - Usage bar colored by load threshold
//	PromptPath                    - Huh input for choosing a file path
package ui
