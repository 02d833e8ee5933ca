package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape written by Write. Durations are kept as
// strings so the file stays human-editable.
type fileConfig struct {
	Version      int            `yaml:"version"`
	Interval     string         `yaml:"interval"`
	Hierarchical bool           `yaml:"hierarchical"`
	Continuous   bool           `yaml:"continuous"`
	Sort         SortConfig     `yaml:"sort"`
	Snapshot     SnapshotConfig `yaml:"snapshot"`
	DiskPath     string         `yaml:"disk_path"`
	LogFile      string         `yaml:"log_file"`
	Debug        bool           `yaml:"debug"`
}

// fieldComments documents each top-level key in the generated file.
var fieldComments = map[string]string{
	"version":      "Config schema version",
	"interval":     "Delay between refreshes in continuous mode (minimum 100ms)",
	"hierarchical": "Group processes under their parent",
	"continuous":   "Start with continuous updates on",
	"sort":         "Initial sort: column is pid, name, memory, or cpu; direction is asc or desc",
	"snapshot":     "Append-only snapshot log; leave path empty to be asked on first save",
	"disk_path":    "Mount point reported as disk usage",
	"log_file":     "Diagnostic log file; empty disables logging",
	"debug":        "Include debug lines in the log file",
}

// Marshal renders cfg as commented YAML.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:      cfg.Version,
		Interval:     cfg.Interval.String(),
		Hierarchical: cfg.Hierarchical,
		Continuous:   cfg.Continuous,
		Sort:         cfg.Sort,
		Snapshot:     cfg.Snapshot,
		DiskPath:     cfg.DiskPath,
		LogFile:      cfg.LogFile,
		Debug:        cfg.Debug,
	}

	var body yaml.Node
	if err := body.Encode(fc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	// Mapping content alternates key, value
	for i := 0; i+1 < len(body.Content); i += 2 {
		keyNode := body.Content[i]
		if comment, ok := fieldComments[keyNode.Value]; ok {
			keyNode.HeadComment = comment
		}
	}

	doc := yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "sysmon configuration",
		Content:     []*yaml.Node{&body},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	return buf.Bytes(), nil
}

// Write saves cfg to path as commented YAML, creating parent directories.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
