// Package source discovers skills from configured sources. A source is either
// a remote git repository, materialized into the fetch cache, or a local
// directory read in place. Both are scanned for SKILL.md manifests; the
// manifest's directory becomes one model.Skill.
//
// Providers never fail a fetch. Problems are reported through FetchResult so
// the caller can tell an unavailable source from a stale or partial one.
package source

import (
	"context"
	"errors"
	"slices"

	"github.com/klauern/skillhub/internal/model"
)

// Kind identifies the provider variant.
type Kind string

const (
	KindGit       Kind = "git"
	KindDirectory Kind = "directory"
)

// Status describes how complete a fetch was.
type Status string

const (
	// StatusOK means the source was fetched and scanned completely.
	StatusOK Status = "ok"
	// StatusStale means refreshing a remote failed and the cached copy was used.
	StatusStale Status = "stale"
	// StatusPartial means scanning stopped early; Skills holds what was found.
	StatusPartial Status = "partial"
	// StatusUnavailable means nothing could be read; Skills is empty.
	StatusUnavailable Status = "unavailable"
)

// ErrSourceNotFound is returned when a source's root does not exist.
var ErrSourceNotFound = errors.New("source not found")

// FetchResult is the outcome of fetching one source.
type FetchResult struct {
	Skills []model.Skill
	Status Status
	// Err explains any status other than StatusOK.
	Err error
}

func unavailable(err error) FetchResult {
	return FetchResult{Skills: []model.Skill{}, Status: StatusUnavailable, Err: err}
}

// Provider produces skill descriptors from one configured source.
type Provider interface {
	// Scope is the namespace every skill from this source is installed under.
	Scope() string
	Kind() Kind
	// Location is the repository URL or directory path, for display.
	Location() string
	// Fetch materializes the source if needed and lists its skills.
	Fetch(ctx context.Context, cacheDir string) FetchResult
	// Update refreshes the source and lists its skills.
	Update(ctx context.Context, cacheDir string) FetchResult
}

// Filter restricts discovery to named skills. An empty filter or one that
// contains "*" allows everything.
type Filter []string

// Allows reports whether a skill directory named name passes the filter.
func (f Filter) Allows(name string) bool {
	return f.IsWildcard() || slices.Contains(f, name)
}

// IsWildcard reports whether the filter allows every skill.
func (f Filter) IsWildcard() bool {
	return len(f) == 0 || slices.Contains(f, "*")
}
