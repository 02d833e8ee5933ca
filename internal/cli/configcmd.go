package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

var (
	configInitForce  bool
	configInitGlobal bool
)

// configCmd groups config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the sysmon config file",
}

// configInitCmd writes a commented default config
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .sysmon.yaml with default settings",
	Long: `Write a commented config file with the default settings.

By default the file is created as .sysmon.yaml in the current directory.
With --global it goes to ~/.config/sysmon/config.yaml instead.

Examples:
  sysmon config init
  sysmon config init --global
  sysmon config init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configInitPath(configInitGlobal)
		if err != nil {
			return err
		}
		return InitConfig(cmd.OutOrStdout(), InitOptions{
			Path:           path,
			Overwrite:      configInitForce,
			NonInteractive: !term.IsTerminal(int(os.Stdin.Fd())),
		})
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite existing config")
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write the global config instead")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// InitOptions holds options for the config init command.
type InitOptions struct {
	Path           string // Where to write the config
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts
}

// configInitPath returns the local or global config location.
func configInitPath(global bool) (string, error) {
	if !global {
		return filepath.Join(".", config.ConfigFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Write a local config without --global")
	}
	return config.GlobalConfigPath(home), nil
}

// InitConfig writes the default config to opts.Path.
func InitConfig(out io.Writer, opts InitOptions) error {
	if _, err := os.Stat(opts.Path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", opts.Path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", opts.Path)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := config.Write(opts.Path, config.DefaultConfig()); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check that the directory is writable")
	}

	fmt.Fprintf(out, "%s Created %s\n", ui.SymbolSuccess, opts.Path)
	return nil
}
