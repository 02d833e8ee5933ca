// Package cli implements the sysmon command-line interface.
//
// The package is organized around Cobra commands, each delegating to a small
// function that takes its inputs explicitly so it can be tested without
// touching the real process table.
//
// # Command Structure
//
// The root command is "sysmon"; without a subcommand it opens the dashboard:
//
//	sysmon              - Interactive process monitor (alias: sysmon monitor)
//	sysmon snapshot     - Sample once and append a block to the snapshot log
//	sysmon kill <pid>   - Terminate a process tree, children first
//	sysmon config init  - Write a commented default config
//	sysmon version      - Print build information
//
// # Settings
//
// Every command loads the config file (see internal/config) and then layers
// flags over it. Global flags (--config, --log-file, --debug, --no-color)
// are persistent on the root command. --interval, --flat and --continuous
// apply to the dashboard; snapshot accepts --flat.
package cli
