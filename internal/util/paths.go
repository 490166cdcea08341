package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeEnvVar overrides the skillhub root directory.
const HomeEnvVar = "SKILLHUB_HOME"

// Env is the explicit environment every component resolves its paths against.
// Home is the user's home directory (platform skill roots live under it) and
// Root is skillhub's own directory holding config, state and the fetch cache.
type Env struct {
	Home string
	Root string
}

// NewEnv builds an Env rooted at home, with Root at home/.skillhub.
func NewEnv(home string) Env {
	return Env{
		Home: home,
		Root: filepath.Join(home, ".skillhub"),
	}
}

// LoadEnv resolves the environment from the process: the user's home
// directory and the SKILLHUB_HOME override.
func LoadEnv() (Env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Env{}, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	env := NewEnv(home)
	if root := os.Getenv(HomeEnvVar); root != "" {
		env.Root = ExpandHome(root, home)
	}
	return env, nil
}

// EnsureRoot creates the skillhub root directory.
func (e Env) EnsureRoot() error {
	if err := os.MkdirAll(e.Root, 0o750); err != nil {
		return fmt.Errorf("failed to create %q: %w", e.Root, err)
	}
	return nil
}

// ConfigPath returns the runtime configuration file.
func (e Env) ConfigPath() string {
	return filepath.Join(e.Root, "config.yaml")
}

// StatePath returns the sync state file.
func (e Env) StatePath() string {
	return filepath.Join(e.Root, "state.json")
}

// CacheDir returns the directory remote sources are cloned into.
func (e Env) CacheDir() string {
	return filepath.Join(e.Root, "cache")
}

// RemoteIndexPath returns the remote source index.
func (e Env) RemoteIndexPath() string {
	return filepath.Join(e.Root, "remote-index.json")
}

// LocalIndexPath returns the local source index.
func (e Env) LocalIndexPath() string {
	return filepath.Join(e.Root, "local-index.json")
}

// ExpandHome expands a leading ~ to home. Other paths are returned unchanged.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}
