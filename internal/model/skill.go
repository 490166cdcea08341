package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ManifestFile marks a directory as a skill; the directory name is the skill name.
const ManifestFile = "SKILL.md"

// ErrInvalidRef is returned when a skill reference is not of the form @scope/name.
var ErrInvalidRef = errors.New("skill reference must be in @scope/name format")

// Skill describes one discovered skill. SourcePath points into storage owned
// by the provider that discovered it and must never be modified through the
// descriptor.
type Skill struct {
	Name       string `json:"name"`
	Scope      string `json:"scope"`
	SourcePath string `json:"source_path"`
	// Platforms restricts eligibility. nil means every platform.
	Platforms []string `json:"platforms,omitempty"`
}

// FullName returns the namespaced identity @scope/name.
func (s Skill) FullName() string {
	return FullName(s.Scope, s.Name)
}

// EligibleFor reports whether the skill may be installed to the named platform.
func (s Skill) EligibleFor(platform string) bool {
	if s.Platforms == nil {
		return true
	}
	return slices.Contains(s.Platforms, platform)
}

// FullName joins scope and name into @scope/name.
func FullName(scope, name string) string {
	return "@" + scope + "/" + name
}

// ParseRef splits "@scope/name" into its parts.
func ParseRef(ref string) (scope, name string, err error) {
	rest, ok := strings.CutPrefix(ref, "@")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	scope, name, ok = strings.Cut(rest, "/")
	if !ok || scope == "" || name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return scope, name, nil
}
