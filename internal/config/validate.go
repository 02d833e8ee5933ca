package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/procsort"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is newer than supported (version %d, but sysmon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade sysmon or lower the 'version' field")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("interval %v is too short - the minimum is %v", cfg.Interval, MinInterval),
			"Set 'interval' to something like 1s or 500ms")
	}

	if err := validateSort(cfg.Sort); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'sort' section in your .sysmon.yaml.")
	}

	if strings.TrimSpace(cfg.DiskPath) == "" {
		return errors.New(errors.ErrConfig,
			"disk_path can't be empty",
			"Use a mount point such as '/'")
	}

	return nil
}

// validateSort checks the sort column and direction names.
func validateSort(s SortConfig) error {
	if s.Column != "" {
		if _, err := procsort.ParseColumn(s.Column); err != nil {
			return fmt.Errorf("sort.column '%s' isn't valid - use 'pid', 'name', 'memory', or 'cpu'", s.Column)
		}
	}
	if s.Direction != "" {
		if _, err := procsort.ParseDirection(s.Direction); err != nil {
			return fmt.Errorf("sort.direction '%s' isn't valid - use 'asc' or 'desc'", s.Direction)
		}
	}
	return nil
}
