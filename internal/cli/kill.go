package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/procctl"
	"github.com/rileyhilliard/sysmon/internal/ui"
	"github.com/rileyhilliard/sysmon/internal/util"
)

// killCmd terminates a process and its descendants
var killCmd = &cobra.Command{
	Use:   "kill <pid>",
	Short: "Terminate a process and all of its descendants",
	Long: `Terminate a process tree, children before parents.

Every descendant is attempted even if some fail. Failures are listed as
warnings and do not change the exit status.

Examples:
  sysmon kill 4242`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return killCommand(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(killCmd)
}

// killCommand is the implementation called by the cobra command.
func killCommand(ctx context.Context, out io.Writer, pidArg string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	pid, err := parsePID(pidArg)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(globals, viewFlags{})
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	runKill(ctx, out, procctl.NewGopsutilTerminator(), log, pid)
	return nil
}

// parsePID validates a pid argument.
func parsePID(arg string) (int32, error) {
	n, err := strconv.ParseInt(arg, 10, 32)
	if err != nil || n <= 0 {
		return 0, errors.New(errors.ErrInput,
			fmt.Sprintf("'%s' isn't a valid process id", arg),
			"Pass a positive number, like 'sysmon kill 4242'.")
	}
	return int32(n), nil
}

// runKill terminates pid's tree and prints the outcome.
func runKill(ctx context.Context, out io.Writer, term procctl.Terminator, log logger.Logger, pid int32) procctl.Report {
	report := procctl.NewController(term, log, nil).Terminate(ctx, pid)

	symbol := ui.SymbolSuccess
	if len(report.Warnings) > 0 {
		symbol = ui.SymbolWarning
	}
	fmt.Fprintf(out, "%s %s\n", symbol, report.Summary())

	if len(report.Warnings) > 0 {
		rows := make([][]string, len(report.Warnings))
		for i, w := range report.Warnings {
			rows[i] = []string{strconv.Itoa(int(w.PID)), util.OneLine(w.Err.Error())}
		}
		fmt.Fprintln(out, ui.RenderSimpleTable([]ui.TableColumn{
			{Title: "PID", Width: 8},
			{Title: "Warning", Width: 60},
		}, rows))
	}
	return report
}
