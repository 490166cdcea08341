package sync

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/klauern/skillhub/internal/model"
	"github.com/klauern/skillhub/internal/source"
)

// Action represents what happened to one (skill, platform) pair.
type Action string

const (
	// ActionInstalled indicates the skill was copied into the platform.
	ActionInstalled Action = "installed"

	// ActionFailed indicates the copy failed.
	ActionFailed Action = "failed"

	// ActionSkippedDuplicate indicates an earlier skill with the same full
	// name won under PolicyFirstWins.
	ActionSkippedDuplicate Action = "skipped-duplicate"
)

// PairResult is the outcome of one (skill, platform) pair.
type PairResult struct {
	Skill    model.Skill
	Platform string
	Action   Action
	// TargetPath is where the skill was written.
	TargetPath string
	Error      error
}

// SourceOutcome is the outcome of fetching one provider.
type SourceOutcome struct {
	Scope    string
	Kind     source.Kind
	Location string
	Status   source.Status
	// Skills is the number of skills the provider returned.
	Skills int
	Err    error
}

// Collision records several discovered skills sharing one full name, in
// discovery order.
type Collision struct {
	FullName    string
	SourcePaths []string
}

// Report contains the complete outcome of a run.
type Report struct {
	// Platforms are the active platforms, in detection order.
	Platforms []string
	Sources   []SourceOutcome
	// Skills are all discovered skills, in discovery order.
	Skills     []model.Skill
	Pairs      []PairResult
	Collisions []Collision
	Policy     CollisionPolicy

	// NoSources is set when there was nothing to fetch.
	NoSources bool
	// SyncedAt is when the run finished; zero for runs that do not record state.
	SyncedAt time.Time
}

// Installed returns pairs that were installed.
func (r *Report) Installed() []PairResult {
	return r.filterByAction(ActionInstalled)
}

// Failed returns pairs that failed.
func (r *Report) Failed() []PairResult {
	return r.filterByAction(ActionFailed)
}

// Skipped returns pairs skipped as duplicates.
func (r *Report) Skipped() []PairResult {
	return r.filterByAction(ActionSkippedDuplicate)
}

func (r *Report) filterByAction(action Action) []PairResult {
	var filtered []PairResult
	for _, p := range r.Pairs {
		if p.Action == action {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// InstalledSkills returns the sorted full names with at least one successful install.
func (r *Report) InstalledSkills() []string {
	names := []string{}
	for _, p := range r.Installed() {
		names = append(names, p.Skill.FullName())
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// DegradedSources returns the sources that were not fetched cleanly.
func (r *Report) DegradedSources() []SourceOutcome {
	var out []SourceOutcome
	for _, s := range r.Sources {
		if s.Status != source.StatusOK {
			out = append(out, s)
		}
	}
	return out
}

// Success returns true if no pair failed and every source was fetched cleanly.
func (r *Report) Success() bool {
	return len(r.Failed()) == 0 && len(r.DegradedSources()) == 0
}

// Summary returns a human-readable summary of the run.
func (r *Report) Summary() string {
	var sb strings.Builder

	platforms := "none"
	if len(r.Platforms) > 0 {
		platforms = strings.Join(r.Platforms, ", ")
	}
	sb.WriteString(fmt.Sprintf("Platforms: %s\n", platforms))

	if r.NoSources {
		sb.WriteString("No sources configured. Add sources to remote-index.json or local-index.json\n")
		return sb.String()
	}

	for _, s := range r.Sources {
		sb.WriteString(fmt.Sprintf("  @%-20s %3d skills  %s\n", s.Scope, s.Skills, s.Status))
	}

	sb.WriteString(fmt.Sprintf("Installed: %d pairs (%d skills)\n", len(r.Installed()), len(r.InstalledSkills())))
	if n := len(r.Skipped()); n > 0 {
		sb.WriteString(fmt.Sprintf("Skipped:   %d duplicate pairs\n", n))
	}
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", len(r.Failed())))

	if len(r.Collisions) > 0 {
		sb.WriteString(fmt.Sprintf("\nDuplicate skills (%s):\n", r.Policy))
		for _, c := range r.Collisions {
			sb.WriteString(fmt.Sprintf("  - %s from %s\n", c.FullName, strings.Join(c.SourcePaths, ", ")))
		}
	}

	if degraded := r.DegradedSources(); len(degraded) > 0 {
		sb.WriteString("\nSource problems:\n")
		for _, s := range degraded {
			sb.WriteString(fmt.Sprintf("  - @%s (%s): %v\n", s.Scope, s.Status, s.Err))
		}
	}

	if failed := r.Failed(); len(failed) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, f := range failed {
			sb.WriteString(fmt.Sprintf("  - %s -> %s: %v\n", f.Skill.FullName(), f.Platform, f.Error))
		}
	}

	return sb.String()
}
