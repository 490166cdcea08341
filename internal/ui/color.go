// Package ui provides terminal styling for skillhub output.
package ui

import (
	"os"

	"github.com/fatih/color"
)

// Color function types for styled output.
var (
	// Success is used for installed skills and healthy sources (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for degraded sources and duplicates (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Info is used for scopes and platform names (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	Bold = color.New(color.Bold).SprintFunc()
	Dim  = color.New(color.Faint).SprintFunc()
	// Header is used for section titles (bold cyan).
	Header = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolSkipped = "-"
)

func withSymbol(style func(...any) string, symbol, msg string) string {
	if msg == "" {
		return style(symbol)
	}
	return style(symbol) + " " + msg
}

// StatusSuccess returns a green checkmark with optional message.
func StatusSuccess(msg string) string { return withSymbol(Success, SymbolSuccess, msg) }

// StatusError returns a red cross with optional message.
func StatusError(msg string) string { return withSymbol(Error, SymbolError, msg) }

// StatusWarning returns a yellow warning sign with optional message.
func StatusWarning(msg string) string { return withSymbol(Warning, SymbolWarning, msg) }

// StatusSkipped returns a dimmed dash with optional message.
func StatusSkipped(msg string) string { return withSymbol(Dim, SymbolSkipped, msg) }

// SourceStatus colors a source fetch status: ok is green, unavailable red,
// anything else (stale, partial) yellow.
func SourceStatus(status string) string {
	switch status {
	case "ok":
		return Success(status)
	case "unavailable":
		return Error(status)
	default:
		return Warning(status)
	}
}

// Configure applies an output.color mode (auto, always, never). The
// --no-color flag and the NO_COLOR environment variable always win.
func Configure(mode string, noColorFlag bool) {
	switch {
	case noColorFlag || os.Getenv("NO_COLOR") != "":
		DisableColors()
	case mode == "always":
		EnableColors()
	case mode == "never":
		DisableColors()
	}
	// auto leaves fatih/color's own terminal detection in place
}

// DisableColors disables all color output.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}
