// Package config loads the YAML configuration of the endfx command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/endfx/batch"
	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/spectrum"
)

// Config is the complete endfx configuration.
type Config struct {
	Output   OutputConfig    `yaml:"output"`
	Channels []ChannelConfig `yaml:"channels"`
	Batch    BatchConfig     `yaml:"batch"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// OutputConfig controls where and how bundles are written.
type OutputConfig struct {
	Root        string `yaml:"root"`
	Compression string `yaml:"compression"` // none, zstd, s2, lz4
	JSON        bool   `yaml:"json"`        // also write <name>.json
}

// ChannelConfig is one aggregation channel, e.g. {name: absorption, reactions: "102-117"}.
type ChannelConfig struct {
	Name      string `yaml:"name"`
	Reactions string `yaml:"reactions"`
}

// BatchConfig controls batch and watch runs.
type BatchConfig struct {
	Workers  int      `yaml:"workers"`
	Patterns []string `yaml:"patterns"`
	Force    bool     `yaml:"force"`
	Debounce string   `yaml:"debounce"`
}

// LoggingConfig selects the log level: debug, info, warn or error.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Root:        "materials",
			Compression: "none",
		},
		Channels: []ChannelConfig{
			{Name: spectrum.Scattering.Name, Reactions: spectrum.FormatReactionIDs(spectrum.Scattering.ReactionIDs)},
			{Name: spectrum.Absorption.Name, Reactions: spectrum.FormatReactionIDs(spectrum.Absorption.ReactionIDs)},
		},
		Batch: BatchConfig{
			Workers:  4,
			Patterns: append([]string(nil), batch.DefaultPatterns...),
			Debounce: "250ms",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
			}

			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", errs.ErrInvalidConfig, path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration as YAML to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// applyEnvOverrides applies ENDFX_OUTPUT, ENDFX_COMPRESSION, ENDFX_WORKERS and
// ENDFX_LOG_LEVEL.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("ENDFX_OUTPUT"); v != "" {
		c.Output.Root = v
	}
	if v := os.Getenv("ENDFX_COMPRESSION"); v != "" {
		c.Output.Compression = v
	}
	if v := os.Getenv("ENDFX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: ENDFX_WORKERS=%q", errs.ErrInvalidConfig, v)
		}
		c.Batch.Workers = n
	}
	if v := os.Getenv("ENDFX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return nil
}

// Validate checks every field and returns an error matching errs.ErrInvalidConfig.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Root) == "" {
		return fmt.Errorf("%w: output.root is empty", errs.ErrInvalidConfig)
	}
	if _, err := c.CompressionType(); err != nil {
		return fmt.Errorf("%w: output.compression: %w", errs.ErrInvalidConfig, err)
	}
	if _, err := c.ChannelSet(); err != nil {
		return err
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("%w: batch.workers must be >= 1, got %d", errs.ErrInvalidConfig, c.Batch.Workers)
	}
	if len(c.Batch.Patterns) == 0 {
		return fmt.Errorf("%w: batch.patterns is empty", errs.ErrInvalidConfig)
	}
	for _, p := range c.Batch.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("%w: batch.patterns: %q: %w", errs.ErrInvalidConfig, p, err)
		}
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// CompressionType returns the parsed output.compression.
func (c *Config) CompressionType() (format.CompressionType, error) {
	return format.ParseCompressionType(c.Output.Compression)
}

// ChannelSet converts the configured channels. Names must be unique and non-empty.
func (c *Config) ChannelSet() ([]spectrum.Channel, error) {
	if len(c.Channels) == 0 {
		return nil, fmt.Errorf("%w: no channels configured", errs.ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Channels))
	channels := make([]spectrum.Channel, 0, len(c.Channels))
	for i, ch := range c.Channels {
		name := strings.TrimSpace(ch.Name)
		if name == "" || strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("%w: channels[%d]: invalid name %q", errs.ErrInvalidConfig, i, ch.Name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: channels[%d]: duplicate name %q", errs.ErrInvalidConfig, i, name)
		}
		seen[name] = struct{}{}

		ids, err := spectrum.ParseReactionIDs(ch.Reactions)
		if err != nil {
			return nil, fmt.Errorf("%w: channels[%d] %s: %w", errs.ErrInvalidConfig, i, name, err)
		}
		channels = append(channels, spectrum.Channel{Name: name, ReactionIDs: ids})
	}

	return channels, nil
}

// DebounceDuration returns batch.debounce, or 0 when unset.
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Batch.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Batch.Debounce)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: batch.debounce %q", errs.ErrInvalidConfig, c.Batch.Debounce)
	}

	return d, nil
}

// LogLevel returns the parsed logging.level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: logging.level: %w", errs.ErrInvalidConfig, err)
	}

	return lvl, nil
}
