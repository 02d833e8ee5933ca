package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logFile    string
	debug      bool
	noColor    bool
}

// viewFlags tune the dashboard and the snapshot layout.
type viewFlags struct {
	interval   time.Duration
	flat       bool
	continuous bool
}

var (
	globals globalFlags
	view    viewFlags
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "sysmon",
	Short: "Interactive process and system monitor",
	Long: `Watch CPU, memory, disk and network usage alongside a sortable,
tree-grouped process table.

Refresh on demand with 'r' or switch on continuous updates with 'c'.
Selected process trees can be terminated and snapshots appended to a log file.

Examples:
  sysmon
  sysmon --continuous --interval 2s
  sysmon --flat --log-file /tmp/sysmon.log --debug`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if globals.noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(globals, view)
	},
}

// monitorCmd is an explicit alias for the root dashboard.
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Open the process monitor dashboard",
	Long: `Open the interactive dashboard. Same as running sysmon without a subcommand.

Examples:
  sysmon monitor
  sysmon monitor --continuous`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(globals, view)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globals.configPath, "config", "", "config file (default: .sysmon.yaml, then ~/.config/sysmon/config.yaml)")
	pf.StringVar(&globals.logFile, "log-file", "", "write diagnostic logs to this file")
	pf.BoolVar(&globals.debug, "debug", false, "include debug lines in the log")
	pf.BoolVar(&globals.noColor, "no-color", false, "disable colored output")

	for _, cmd := range []*cobra.Command{rootCmd, monitorCmd} {
		addViewFlags(cmd, &view)
	}

	rootCmd.AddCommand(monitorCmd)
}

// addViewFlags registers the layout and refresh flags on cmd.
func addViewFlags(cmd *cobra.Command, f *viewFlags) {
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "continuous refresh interval (e.g., 500ms, 2s)")
	cmd.Flags().BoolVar(&f.flat, "flat", false, "list processes without grouping them under their parent")
	cmd.Flags().BoolVar(&f.continuous, "continuous", false, "start with continuous updates on")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		if _, ok := err.(*errors.Error); !ok {
			fmt.Fprintln(os.Stderr)
		}
		os.Exit(1)
	}
}

// loadSettings loads the config file and layers command-line flags over it.
func loadSettings(g globalFlags, v viewFlags) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(g.configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, g, v)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides config values with any flags that were set.
func applyFlags(cfg *config.Config, g globalFlags, v viewFlags) {
	if v.interval != 0 {
		cfg.Interval = v.interval
	}
	if v.flat {
		cfg.Hierarchical = false
	}
	if v.continuous {
		cfg.Continuous = true
	}
	if g.logFile != "" {
		cfg.LogFile = config.ExpandPath(g.logFile)
	}
	if g.debug {
		cfg.Debug = true
	}
}

// openLogger returns the configured file logger, or fallback when no log
// file is set. The returned close function is always safe to call.
func openLogger(cfg *config.Config, fallback io.Writer) (logger.Logger, func() error, error) {
	if cfg.LogFile == "" {
		if fallback == nil || !cfg.Debug {
			return logger.Noop(), func() error { return nil }, nil
		}
		return logger.New(fallback, "[sysmon]", true), func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open log file: "+cfg.LogFile,
			"Check the directory exists and is writable, or drop --log-file")
	}
	return logger.New(f, "[sysmon]", cfg.Debug), f.Close, nil
}
