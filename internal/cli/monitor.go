package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/monitor"
	"github.com/rileyhilliard/sysmon/internal/procctl"
	"github.com/rileyhilliard/sysmon/internal/snapshot"
)

// monitorCommand starts the TUI dashboard.
func monitorCommand(g globalFlags, v viewFlags) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrInput,
			"The dashboard needs an interactive terminal",
			"Use 'sysmon snapshot --out FILE' for non-interactive output.")
	}

	cfg, err := loadSettings(g, v)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs only go to a file
	log, closeLog, err := openLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	spec, err := cfg.SortSpec()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'sort' section in your config.")
	}

	engine := monitor.NewEngine(monitor.EngineOptions{
		Provider:   metrics.NewGopsutilProvider(cfg.DiskPath, log),
		Terminator: procctl.NewGopsutilTerminator(),
		Writer:     snapshot.NewWriter(nil, cfg.Snapshot.Path),
		Interval:   cfg.Interval,
		Logger:     log,
	})
	defer engine.Close()

	model := monitor.NewModel(engine, monitor.Options{
		Hierarchical: cfg.Hierarchical,
		Continuous:   cfg.Continuous,
		Spec:         spec,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	engine.Attach(p.Send)

	log.Info("dashboard started (interval %s, continuous %v)", cfg.Interval, cfg.Continuous)
	_, err = p.Run()
	return err
}
