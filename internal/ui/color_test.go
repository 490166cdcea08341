package ui

import (
	"testing"
)

func TestStatusFunctions(t *testing.T) {
	// Disable colors for consistent test output
	DisableColors()
	defer EnableColors()

	tests := map[string]struct {
		fn    func(string) string
		input string
		want  string
	}{
		"success empty":    {StatusSuccess, "", SymbolSuccess},
		"success with msg": {StatusSuccess, "installed", SymbolSuccess + " installed"},
		"error with msg":   {StatusError, "failed", SymbolError + " failed"},
		"warning with msg": {StatusWarning, "stale", SymbolWarning + " stale"},
		"skipped empty":    {StatusSkipped, "", SymbolSkipped},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.fn(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceStatus(t *testing.T) {
	DisableColors()
	defer EnableColors()

	for _, s := range []string{"ok", "stale", "partial", "unavailable"} {
		if got := SourceStatus(s); got != s {
			t.Errorf("SourceStatus(%q) = %q without colors", s, got)
		}
	}
}

func TestConfigure(t *testing.T) {
	tests := map[string]struct {
		mode    string
		flag    bool
		noColor string
		start   bool
		want    bool
	}{
		"always":              {mode: "always", start: false, want: true},
		"never":               {mode: "never", start: true, want: false},
		"auto keeps current":  {mode: "auto", start: true, want: true},
		"flag beats always":   {mode: "always", flag: true, start: true, want: false},
		"env beats always":    {mode: "always", noColor: "1", start: true, want: false},
		"auto keeps disabled": {mode: "auto", start: false, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			if tt.start {
				EnableColors()
			} else {
				DisableColors()
			}
			t.Cleanup(EnableColors)

			Configure(tt.mode, tt.flag)
			if got := IsColorEnabled(); got != tt.want {
				t.Errorf("IsColorEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
