// Package model provides data types for skillhub.
package model

import (
	"fmt"
	"strings"
)

// Platform identifies a target platform skills are installed into.
type Platform string

const (
	Claude Platform = "claude"
	Codex  Platform = "codex"
	Gemini Platform = "gemini"
)

// IsValid returns true if the platform is recognized
func (p Platform) IsValid() bool {
	switch p {
	case Claude, Codex, Gemini:
		return true
	default:
		return false
	}
}

// AllPlatforms returns every known platform in declaration order. This order
// is the iteration order wherever platforms are processed.
func AllPlatforms() []Platform {
	return []Platform{Claude, Codex, Gemini}
}

// String returns the platform name.
func (p Platform) String() string {
	return string(p)
}

// ParsePlatform converts a string to a Platform, case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown platform %q (valid: claude, codex, gemini)", s)
	}
	return p, nil
}
