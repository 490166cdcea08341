package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/model"
)

// GitProvider discovers skills in a remote git repository, cloned into
// cacheDir/@scope/<repo>.
type GitProvider struct {
	scope  string
	url    string
	filter Filter
	git    Git
}

// NewGitProvider creates a provider for the repository at url. A nil git uses ExecGit.
func NewGitProvider(scope, url string, skills []string, git Git) *GitProvider {
	if git == nil {
		git = ExecGit{}
	}
	return &GitProvider{
		scope:  scope,
		url:    url,
		filter: Filter(skills),
		git:    git,
	}
}

// Scope returns the namespace of this source.
func (p *GitProvider) Scope() string { return p.scope }

// Kind returns KindGit.
func (p *GitProvider) Kind() Kind { return KindGit }

// Location returns the repository URL.
func (p *GitProvider) Location() string { return p.url }

// WorkDir returns where the working copy lives under cacheDir.
func (p *GitProvider) WorkDir(cacheDir string) string {
	return filepath.Join(cacheDir, "@"+p.scope, repoName(p.url))
}

// Fetch clones the repository if it is not cached yet, otherwise attempts a
// fast-forward update, then scans the working copy.
func (p *GitProvider) Fetch(ctx context.Context, cacheDir string) FetchResult {
	dir, stale, err := p.materialize(ctx, cacheDir)
	if err != nil {
		logging.Warn("source unavailable",
			logging.Scope(p.scope),
			logging.Source(p.url),
			logging.Err(err),
		)
		return unavailable(err)
	}

	result := p.scan(dir)
	if stale != nil && result.Status == StatusOK {
		result.Status = StatusStale
		result.Err = stale
	}
	return result
}

// Update is Fetch: fetching a remote always refreshes it first.
func (p *GitProvider) Update(ctx context.Context, cacheDir string) FetchResult {
	return p.Fetch(ctx, cacheDir)
}

// materialize returns the working copy directory. A non-nil stale error means
// the update failed and an older copy is being used.
func (p *GitProvider) materialize(ctx context.Context, cacheDir string) (dir string, stale error, err error) {
	dir = p.WorkDir(cacheDir)

	if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
		pullErr := p.git.Pull(ctx, dir)
		if pullErr == nil {
			logging.Debug("updated cached repository", logging.Scope(p.scope), logging.Path(dir))
			return dir, nil, nil
		}
		if _, readErr := os.ReadDir(dir); readErr != nil {
			return "", nil, errors.Join(pullErr, readErr)
		}
		logging.Warn("update failed, using cached copy",
			logging.Scope(p.scope),
			logging.Path(dir),
			logging.Err(pullErr),
		)
		return dir, pullErr, nil
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0o750); err != nil {
		return "", nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := p.git.Clone(ctx, p.url, dir); err != nil {
		return "", nil, err
	}
	logging.Debug("cloned repository", logging.Scope(p.scope), logging.Source(p.url), logging.Path(dir))
	return dir, nil, nil
}

func (p *GitProvider) scan(dir string) FetchResult {
	dirs, walkErr := findManifests(dir, p.filter)

	skills := make([]model.Skill, 0, len(dirs))
	for _, d := range dirs {
		platforms, err := readPlatforms(d)
		if err != nil {
			logging.Warn("unreadable manifest, skill eligible for all platforms",
				logging.Scope(p.scope),
				logging.Path(d),
				logging.Err(err),
			)
		}
		warnUnknownPlatforms(p.scope, d, platforms)
		skills = append(skills, model.Skill{
			Name:       filepath.Base(d),
			Scope:      p.scope,
			SourcePath: d,
			Platforms:  platforms,
		})
	}

	if walkErr != nil {
		return FetchResult{Skills: skills, Status: StatusPartial, Err: walkErr}
	}
	return FetchResult{Skills: skills, Status: StatusOK}
}

// warnUnknownPlatforms logs manifest platform names skillhub does not know.
// Eligibility is unchanged: an unknown name simply matches no adapter.
func warnUnknownPlatforms(scope, dir string, platforms []string) {
	for _, name := range platforms {
		if _, err := model.ParsePlatform(name); err != nil {
			logging.Warn("manifest names unknown platform",
				logging.Scope(scope),
				logging.Path(dir),
				logging.Platform(name),
			)
		}
	}
}
