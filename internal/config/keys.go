package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

var fields = map[string]field{
	"auto_sync": {
		get: func(c *Config) string { return strconv.FormatBool(c.AutoSync) },
		set: func(c *Config, v string) (err error) {
			c.AutoSync, err = strictBool(v)
			return err
		},
	},
	"sync_interval_hours": {
		get: func(c *Config) string { return strconv.FormatFloat(c.SyncIntervalHours, 'g', -1, 64) },
		set: func(c *Config, v string) (err error) {
			c.SyncIntervalHours, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("not a number: %q", v)
			}
			return nil
		},
	},
	"sync.on_duplicate": {
		get: func(c *Config) string { return c.Sync.OnDuplicate },
		set: func(c *Config, v string) error { c.Sync.OnDuplicate = v; return nil },
	},
	"daemon.schedule": {
		get: func(c *Config) string { return c.Daemon.Schedule },
		set: func(c *Config, v string) error { c.Daemon.Schedule = v; return nil },
	},
	"daemon.watch_local": {
		get: func(c *Config) string { return strconv.FormatBool(c.Daemon.WatchLocal) },
		set: func(c *Config, v string) (err error) {
			c.Daemon.WatchLocal, err = strictBool(v)
			return err
		},
	},
	"output.color": {
		get: func(c *Config) string { return c.Output.Color },
		set: func(c *Config, v string) error { c.Output.Color = v; return nil },
	},
}

// Keys returns every settable key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the value of key formatted as Set would accept it.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	return f.get(c), nil
}

// Set assigns value to key and validates the result. The config is left
// unchanged when the value is rejected.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}

	next := *c
	if err := f.set(&next, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// ParseAssignment splits "key=value".
func ParseAssignment(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", s)
	}
	return key, value, nil
}

func strictBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
