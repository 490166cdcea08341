package sync

import (
	"fmt"
	"strings"
)

// CollisionPolicy decides which skill is installed when several share a full name.
type CollisionPolicy string

const (
	// PolicyLastWins installs every duplicate in discovery order; the last
	// one overwrites the others.
	PolicyLastWins CollisionPolicy = "last-wins"

	// PolicyFirstWins installs only the first duplicate discovered.
	PolicyFirstWins CollisionPolicy = "first-wins"
)

// IsValid returns true if the policy is recognized.
func (p CollisionPolicy) IsValid() bool {
	switch p {
	case PolicyLastWins, PolicyFirstWins:
		return true
	default:
		return false
	}
}

// String returns the string representation of the policy.
func (p CollisionPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p CollisionPolicy) Description() string {
	switch p {
	case PolicyLastWins:
		return "Install every duplicate; the source listed last ends up on disk"
	case PolicyFirstWins:
		return "Install the first duplicate discovered and skip the rest"
	default:
		return "Unknown policy"
	}
}

// ParseCollisionPolicy converts a config value to a CollisionPolicy. An
// empty string selects PolicyLastWins.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PolicyLastWins, nil
	}
	p := CollisionPolicy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown duplicate policy %q (valid: %s, %s)", s, PolicyLastWins, PolicyFirstWins)
	}
	return p, nil
}
