// Package e2e drives the skillhub CLI end to end against temporary homes,
// local skill directories and throwaway git repositories.
package e2e

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/skillhub/internal/cli"
	"github.com/klauern/skillhub/internal/util"
)

// Result is the captured outcome of one CLI invocation.
type Result struct {
	Stdout string
	// Stderr holds logs and progress output.
	Stderr   string
	Err      error
	ExitCode int
}

// Success reports whether the command returned no error.
func (r *Result) Success() bool { return r.Err == nil }

// Harness runs the skillhub CLI in-process against a throwaway HOME.
type Harness struct {
	t    *testing.T
	home string
}

// NewHarness isolates HOME for the test. No platform exists until a
// platform fixture is requested, and colors are off so output is stable.
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(util.HomeEnvVar, "")
	t.Setenv("NO_COLOR", "1")
	return &Harness{t: t, home: home}
}

func (h *Harness) HomeDir() string { return h.home }

// Env returns the skillhub environment the CLI resolves inside the harness.
func (h *Harness) Env() util.Env { return util.NewEnv(h.home) }

// Run invokes the CLI with args, which need not include the program name.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()
	argv := append([]string{"skillhub"}, args...)

	var stdout, stderr bytes.Buffer
	r := &Result{Err: cli.NewApp(&stdout, &stderr).Run(context.Background(), argv)}
	r.Stdout, r.Stderr = stdout.String(), stderr.String()
	if r.Err != nil {
		r.ExitCode = 1
	}
	return r
}

// RunWithStdin executes a CLI command with stdin connected to a pipe
// carrying the given input. A pipe is never a terminal, so commands take
// their non-interactive paths.
func (h *Harness) RunWithStdin(stdin string, args ...string) *Result {
	h.t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("stdin pipe: %v", err)
	}
	go func() {
		_, _ = w.WriteString(stdin)
		_ = w.Close()
	}()

	saved := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = saved
		_ = r.Close()
	}()

	return h.Run(args...)
}

// SkillsDir returns the skills directory of a platform inside the harness.
func (h *Harness) SkillsDir(platform string) string {
	return filepath.Join(h.home, "."+platform, "skills")
}
