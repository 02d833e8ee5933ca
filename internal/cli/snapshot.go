package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/monitor"
	"github.com/rileyhilliard/sysmon/internal/procsort"
	"github.com/rileyhilliard/sysmon/internal/snapshot"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

var (
	snapshotOut  string
	snapshotView viewFlags
)

// snapshotCmd samples once and appends a block to the snapshot log
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Append one system snapshot to a log file",
	Long: `Sample the system once and append a snapshot block to a log file.

The block records CPU, memory, disk and network usage followed by every
running process. Existing content is never overwritten.

The path comes from --out, then snapshot.path in the config. If neither is
set you are asked for one; an empty answer cancels without writing.

Examples:
  sysmon snapshot --out system_monitor_log.txt
  sysmon snapshot --flat`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd.Context(), cmd.OutOrStdout(), snapshotOut)
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "", "log file to append to")
	snapshotCmd.Flags().BoolVar(&snapshotView.flat, "flat", false, "list processes without grouping them under their parent")
	rootCmd.AddCommand(snapshotCmd)
}

// SnapshotOptions configures runSnapshot.
type SnapshotOptions struct {
	Provider     metrics.Provider
	Fs           afero.Fs
	Path         string
	Spec         procsort.Spec
	Hierarchical bool
	Logger       logger.Logger
	Now          func() time.Time
}

// snapshotCommand is the implementation called by the cobra command.
func snapshotCommand(ctx context.Context, out io.Writer, outFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadSettings(globals, snapshotView)
	if err != nil {
		return err
	}

	log, closeLog, err := openLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	path, err := resolveSnapshotPath(outFlag, cfg, term.IsTerminal(int(os.Stdin.Fd())), ui.PromptPath)
	if err != nil {
		if errors.IsCancelled(err) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		return err
	}

	spec, err := cfg.SortSpec()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'sort' section in your config.")
	}

	n, err := runSnapshot(ctx, SnapshotOptions{
		Provider:     metrics.NewGopsutilProvider(cfg.DiskPath, log),
		Path:         path,
		Spec:         spec,
		Hierarchical: cfg.Hierarchical,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Appended %d processes to %s\n", ui.SymbolSuccess, n, path)
	return nil
}

// resolveSnapshotPath picks the log path: flag, then config, then a prompt
// when interactive is true.
func resolveSnapshotPath(outFlag string, cfg *config.Config, interactive bool, prompt func(title, placeholder string) (string, error)) (string, error) {
	if outFlag != "" {
		return config.ExpandPath(outFlag), nil
	}
	if cfg.Snapshot.Path != "" {
		return cfg.Snapshot.Path, nil
	}
	if !interactive {
		return "", errors.New(errors.ErrInput,
			"No snapshot path given",
			"Pass --out FILE or set snapshot.path in your config.")
	}

	path, err := prompt("Save snapshot to", snapshot.DefaultFileName)
	if err != nil {
		return "", err
	}
	return config.ExpandPath(path), nil
}

// runSnapshot performs one cycle and appends it to opts.Path. It returns the
// number of processes written.
func runSnapshot(ctx context.Context, opts SnapshotOptions) (int, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cycle := monitor.NewPipeline(opts.Provider, opts.Logger).Run(ctx)
	if cycle.Err != nil {
		return 0, errors.WrapWithCode(cycle.Err, errors.ErrSample,
			"Failed to sample the system",
			"Run again with --debug --log-file FILE for details")
	}

	tree := cycle.Flat
	if opts.Hierarchical {
		tree = cycle.Tree
	}
	procs := procsort.SortTree(tree, opts.Spec).Samples()

	w := snapshot.NewWriter(opts.Fs, opts.Path)
	if err := w.Append(cycle.Snapshot, procs, opts.Now()); err != nil {
		return 0, err
	}
	return len(procs), nil
}
