package config

import (
	"time"

	"github.com/rileyhilliard/sysmon/internal/procsort"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// MinInterval is the shortest continuous refresh interval accepted.
const MinInterval = 100 * time.Millisecond

// Config represents the complete .sysmon.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval between cycles in continuous mode.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Hierarchical groups processes under their parent.
	Hierarchical bool `yaml:"hierarchical" mapstructure:"hierarchical"`

	// Continuous starts the dashboard with automatic refresh on.
	Continuous bool `yaml:"continuous" mapstructure:"continuous"`

	Sort     SortConfig     `yaml:"sort" mapstructure:"sort"`
	Snapshot SnapshotConfig `yaml:"snapshot" mapstructure:"snapshot"`

	// DiskPath is the mount point reported as disk usage.
	DiskPath string `yaml:"disk_path" mapstructure:"disk_path"`

	// LogFile receives diagnostic logs. Empty disables logging in the dashboard.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`

	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// SortConfig is the initial sort order of the process table.
type SortConfig struct {
	// Column: "pid", "name", "memory", or "cpu".
	Column string `yaml:"column" mapstructure:"column"`

	// Direction: "asc" or "desc".
	Direction string `yaml:"direction" mapstructure:"direction"`
}

// SnapshotConfig controls the snapshot log.
type SnapshotConfig struct {
	// Path of the append-only log. Empty means ask on first save.
	// A leading ~ expands to the home directory.
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:      CurrentConfigVersion,
		Interval:     time.Second,
		Hierarchical: true,
		Continuous:   false,
		Sort: SortConfig{
			Column:    "pid",
			Direction: "asc",
		},
		DiskPath: "/",
	}
}

// SortSpec converts the sort section into a procsort.Spec.
func (c *Config) SortSpec() (procsort.Spec, error) {
	spec := procsort.DefaultSpec()
	if c.Sort.Column != "" {
		col, err := procsort.ParseColumn(c.Sort.Column)
		if err != nil {
			return spec, err
		}
		spec.Column = col
	}
	if c.Sort.Direction != "" {
		dir, err := procsort.ParseDirection(c.Sort.Direction)
		if err != nil {
			return spec, err
		}
		spec.Direction = dir
	}
	return spec, nil
}
