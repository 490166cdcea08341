package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/klauern/skillhub/internal/cli"
)

func TestCLIInitialization(t *testing.T) {
	var out, errOut bytes.Buffer
	err := cli.NewApp(&out, &errOut).Run(context.Background(), []string{"skillhub", "--help"})
	if err != nil {
		t.Fatalf("CLI initialization failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "skillhub") {
		t.Errorf("expected help output to contain 'skillhub', got: %q", output)
	}
	if !strings.Contains(output, "USAGE") || !strings.Contains(output, "COMMANDS") {
		t.Errorf("expected help output to contain USAGE and COMMANDS sections, got: %q", output)
	}
	for _, name := range []string{"sync", "install", "list", "status", "config", "check-auto-sync", "source", "daemon"} {
		if !strings.Contains(output, name) {
			t.Errorf("expected help output to list %q", name)
		}
	}
}
