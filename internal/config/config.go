// Package config provides configuration management for skillhub.
// It supports a YAML configuration file, environment variable overrides, and
// sensible defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Duplicate handling policies for sync.on_duplicate.
const (
	OnDuplicateLastWins  = "last-wins"
	OnDuplicateFirstWins = "first-wins"
)

// Color modes for output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrUnknownKey is returned by Get and Set for keys that are not settable.
var ErrUnknownKey = errors.New("unknown config key")

// Config represents the complete skillhub configuration.
type Config struct {
	// AutoSync lets check-auto-sync run a sync when the interval has elapsed
	AutoSync bool `yaml:"auto_sync"`
	// SyncIntervalHours is the minimum time between automatic syncs
	SyncIntervalHours float64 `yaml:"sync_interval_hours"`

	Sync   SyncConfig   `yaml:"sync"`
	Daemon DaemonConfig `yaml:"daemon"`
	Output OutputConfig `yaml:"output"`
}

// SyncConfig holds synchronization settings.
type SyncConfig struct {
	// OnDuplicate decides what happens when two sources provide the same
	// @scope/name (last-wins, first-wins)
	OnDuplicate string `yaml:"on_duplicate"`
}

// DaemonConfig holds settings for the background daemon.
type DaemonConfig struct {
	// Schedule is a cron expression or descriptor for the auto-sync check
	Schedule string `yaml:"schedule"`
	// WatchLocal triggers a sync when a local source directory changes
	WatchLocal bool `yaml:"watch_local"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `yaml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		AutoSync:          true,
		SyncIntervalHours: 24,
		Sync: SyncConfig{
			OnDuplicate: OnDuplicateLastWins,
		},
		Daemon: DaemonConfig{
			Schedule:   "@every 1h",
			WatchLocal: false,
		},
		Output: OutputConfig{
			Color: ColorAuto,
		},
	}
}

// Load reads the configuration at path over the defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFile reads the configuration at path without environment overrides.
// Use it when the result is written back with Save.
func LoadFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is under the skillhub root
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
		}
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// #nosec G306 - config file should be readable by user
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// String renders the configuration as YAML.
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return string(data)
}

// Validate checks field values that the YAML decoder cannot.
func (c *Config) Validate() error {
	var errs []error
	if c.SyncIntervalHours < 0 {
		errs = append(errs, fmt.Errorf("sync_interval_hours must be >= 0, got %v", c.SyncIntervalHours))
	}
	if !slices.Contains([]string{OnDuplicateLastWins, OnDuplicateFirstWins}, c.Sync.OnDuplicate) {
		errs = append(errs, fmt.Errorf("sync.on_duplicate must be %s or %s, got %q",
			OnDuplicateLastWins, OnDuplicateFirstWins, c.Sync.OnDuplicate))
	}
	if _, err := cron.ParseStandard(c.Daemon.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("daemon.schedule %q: %w", c.Daemon.Schedule, err))
	}
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color))
	}
	return errors.Join(errs...)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern SKILLHUB_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("SKILLHUB_AUTO_SYNC"); v != "" {
		c.AutoSync = parseBool(v)
	}
	if v := os.Getenv("SKILLHUB_SYNC_INTERVAL_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.SyncIntervalHours = f
		}
	}
	if v := os.Getenv("SKILLHUB_ON_DUPLICATE"); v != "" {
		c.Sync.OnDuplicate = v
	}
	if v := os.Getenv("SKILLHUB_DAEMON_SCHEDULE"); v != "" {
		c.Daemon.Schedule = v
	}
	if v := os.Getenv("SKILLHUB_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
