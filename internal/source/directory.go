package source

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/model"
	"github.com/klauern/skillhub/internal/util"
)

// DirectoryProvider discovers skills in a local directory, read in place.
// Manifests are not parsed: local skills are eligible for every platform.
type DirectoryProvider struct {
	scope  string
	path   string
	filter Filter
}

// NewDirectoryProvider creates a provider for path, expanding a leading ~
// against home once.
func NewDirectoryProvider(scope, path string, skills []string, home string) *DirectoryProvider {
	return &DirectoryProvider{
		scope:  scope,
		path:   util.ExpandHome(path, home),
		filter: Filter(skills),
	}
}

// Scope returns the namespace of this source.
func (p *DirectoryProvider) Scope() string { return p.scope }

// Kind returns KindDirectory.
func (p *DirectoryProvider) Kind() Kind { return KindDirectory }

// Location returns the expanded directory path.
func (p *DirectoryProvider) Location() string { return p.path }

// Fetch scans the directory. cacheDir is unused.
func (p *DirectoryProvider) Fetch(_ context.Context, _ string) FetchResult {
	dirs, err := findManifests(p.path, p.filter)

	skills := make([]model.Skill, 0, len(dirs))
	for _, d := range dirs {
		skills = append(skills, model.Skill{
			Name:       filepath.Base(d),
			Scope:      p.scope,
			SourcePath: d,
		})
	}

	switch {
	case err == nil:
		return FetchResult{Skills: skills, Status: StatusOK}
	case errors.Is(err, ErrSourceNotFound):
		logging.Debug("source directory missing", logging.Scope(p.scope), logging.Path(p.path))
		return unavailable(err)
	default:
		logging.Warn("source scan incomplete",
			logging.Scope(p.scope),
			logging.Path(p.path),
			logging.Count(len(skills)),
			logging.Err(err),
		)
		return FetchResult{Skills: skills, Status: StatusPartial, Err: err}
	}
}

// Update is Fetch: there is nothing to refresh for a local directory.
func (p *DirectoryProvider) Update(ctx context.Context, cacheDir string) FetchResult {
	return p.Fetch(ctx, cacheDir)
}
