package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for digitfactor.
type FileConfig struct {
	Workers     *int    `yaml:"workers,omitempty"`
	MaxFrontier *int    `yaml:"max_frontier,omitempty"`
	TimeBudget  *string `yaml:"time_budget,omitempty"`
	Quiet       *bool   `yaml:"quiet,omitempty"`
	NoColor     *bool   `yaml:"no_color,omitempty"`
	Format      *string `yaml:"format,omitempty"`
	Journal     *string `yaml:"journal,omitempty"`
	Cache       *string `yaml:"cache,omitempty"`
}

// Formats accepted by the format key and the CLI output flags.
const (
	FormatTable = "table"
	FormatText  = "text"
	FormatJSON  = "json"
)

// ErrNotFound is returned by LoadLocal and LoadGlobal when no file exists.
var ErrNotFound = errors.New("config not found")

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a project-local config file in the given directory.
// It supports .digitfactor.yml/.yaml and digitfactor.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".digitfactor.yml", ".digitfactor.yaml", "digitfactor.yml", "digitfactor.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, fmt.Errorf("no local config: %w", ErrNotFound)
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, fmt.Errorf("no config dir: %w", ErrNotFound)
	}
	p := filepath.Join(base, "digitfactor", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, fmt.Errorf("no global config: %w", ErrNotFound)
}

// Validate checks values that YAML typing alone cannot catch.
func (fc FileConfig) Validate() error {
	if fc.Workers != nil && *fc.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", *fc.Workers)
	}
	if fc.MaxFrontier != nil && *fc.MaxFrontier < 0 {
		return fmt.Errorf("max_frontier must be >= 0, got %d", *fc.MaxFrontier)
	}
	if _, err := fc.TimeBudgetDuration(); err != nil {
		return err
	}
	if fc.Format != nil {
		switch *fc.Format {
		case FormatTable, FormatText, FormatJSON:
		default:
			return fmt.Errorf("format must be table|text|json, got %q", *fc.Format)
		}
	}
	return nil
}

// TimeBudgetDuration parses time_budget. A missing key yields zero.
func (fc FileConfig) TimeBudgetDuration() (time.Duration, error) {
	if fc.TimeBudget == nil || *fc.TimeBudget == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(*fc.TimeBudget)
	if err != nil {
		return 0, fmt.Errorf("time_budget: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("time_budget must be >= 0, got %s", d)
	}
	return d, nil
}
