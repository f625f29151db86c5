package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MeKo-Tech/tally/internal/metrics"
	"github.com/MeKo-Tech/tally/internal/report"
	"github.com/MeKo-Tech/tally/internal/template"
)

// Config represents the complete configuration for the tally CLI.
// It is loaded from configuration files, environment variables and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Timer settings
	Timer TimerConfig `mapstructure:"timer" yaml:"timer" json:"timer"`

	// Exec command settings
	Exec ExecConfig `mapstructure:"exec" yaml:"exec" json:"exec"`

	// Output settings
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// TimerConfig contains defaults applied to timers created by the CLI.
type TimerConfig struct {
	Template  string `mapstructure:"template" yaml:"template" json:"template"`
	Namespace string `mapstructure:"namespace" yaml:"namespace" json:"namespace"`
}

// ExecConfig contains settings for the exec command.
type ExecConfig struct {
	Name    string `mapstructure:"name" yaml:"name" json:"name"`
	Repeat  int    `mapstructure:"repeat" yaml:"repeat" json:"repeat"`
	Metrics bool   `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// OutputConfig contains report output settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Timer: TimerConfig{
			Template:  template.Default,
			Namespace: metrics.DefaultNamespace,
		},
		Exec: ExecConfig{
			Name:    "exec",
			Repeat:  1,
			Metrics: false,
		},
		Output: OutputConfig{
			Format: report.FormatText,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if _, err := template.Parse(c.Timer.Template); err != nil {
		return fmt.Errorf("invalid timer.template: %w", err)
	}

	if c.Exec.Repeat <= 0 {
		return fmt.Errorf("invalid exec.repeat: %d (must be positive)", c.Exec.Repeat)
	}
	if c.Exec.Name == "" {
		return errors.New("invalid exec.name: must not be empty")
	}

	if c.Output.Format != "" && !slices.Contains(report.Formats(), c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(report.Formats(), ", "))
	}

	return nil
}
