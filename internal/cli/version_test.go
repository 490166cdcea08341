package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"runtime"
	"strings"
	"testing"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close pipe writer: %v", err)
	}
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return buf.String(), runErr
}

func TestVersionCommand(t *testing.T) {
	newHome(t)

	output, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"skillhub", "version"})
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{
		"skillhub version " + Version,
		"commit: " + Commit,
		"built: " + BuildDate,
		"go: " + runtime.Version(),
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Run() output = %q, want substring %q", output, want)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	newHome(t)

	out, _, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("--version output = %q, want %q", out, Version)
	}
}
