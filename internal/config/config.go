// Package config loads samplers settings from an optional YAML file and
// SAMPLERS_* environment variables. Command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel validation errors.
var (
	ErrInvalidDisplaySize = errors.New("histogram display size must be positive")
	ErrInvalidBucketCount = errors.New("histogram bucket count must not be negative")
	ErrInvalidPassthrough = errors.New("unknown histogram passthrough mode")
	ErrInvalidFormat      = errors.New("unknown summary format")
	ErrInvalidLogLevel    = errors.New("unknown log level")
)

// Histogram passthrough modes.
const (
	PassthroughAuto   = "auto"
	PassthroughAlways = "always"
	PassthroughNever  = "never"
)

// Summary output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// PassthroughModes lists the accepted histogram passthrough modes.
var PassthroughModes = []string{PassthroughAuto, PassthroughAlways, PassthroughNever}

// Formats lists the accepted summary formats.
var Formats = []string{FormatText, FormatTable, FormatJSON, FormatYAML}

var logLevels = []string{"debug", "info", "warn", "error"}

// Config is the top-level configuration struct for samplers.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Histogram HistogramConfig `mapstructure:"histogram"`
	Sampler   SamplerConfig   `mapstructure:"sampler"`
	Summary   SummaryConfig   `mapstructure:"summary"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// HistogramConfig holds histogram rendering defaults.
type HistogramConfig struct {
	Passthrough string `mapstructure:"passthrough"`
	NumBuckets  int    `mapstructure:"num_buckets"`
	DisplaySize int    `mapstructure:"display_size"`
}

// SamplerConfig holds generator settings.
type SamplerConfig struct {
	// Seed fixes the generator seed; zero picks a random one per run.
	Seed uint64 `mapstructure:"seed"`
}

// SummaryConfig holds summarize defaults.
type SummaryConfig struct {
	Format string `mapstructure:"format"`
}

// LoggingConfig holds diagnostic logging settings. Logs always go to stderr.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	histErr := c.ValidateHistogram()
	if histErr != nil {
		return histErr
	}

	if !slices.Contains(Formats, c.Summary.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Summary.Format)
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}

// ValidateHistogram checks the histogram section only.
func (c *Config) ValidateHistogram() error {
	if c.Histogram.DisplaySize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDisplaySize, c.Histogram.DisplaySize)
	}

	if c.Histogram.NumBuckets < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBucketCount, c.Histogram.NumBuckets)
	}

	if !slices.Contains(PassthroughModes, c.Histogram.Passthrough) {
		return fmt.Errorf("%w: %q", ErrInvalidPassthrough, c.Histogram.Passthrough)
	}

	return nil
}
