package sync

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauern/skillhub/internal/adapter"
	"github.com/klauern/skillhub/internal/model"
	"github.com/klauern/skillhub/internal/source"
	"github.com/klauern/skillhub/internal/state"
	"github.com/klauern/skillhub/internal/util"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// stubProvider returns a canned FetchResult.
type stubProvider struct {
	scope   string
	result  source.FetchResult
	fetches int
}

func (p *stubProvider) Scope() string     { return p.scope }
func (p *stubProvider) Kind() source.Kind { return source.KindDirectory }
func (p *stubProvider) Location() string  { return "stub:" + p.scope }
func (p *stubProvider) Update(ctx context.Context, cacheDir string) source.FetchResult {
	return p.Fetch(ctx, cacheDir)
}

func (p *stubProvider) Fetch(context.Context, string) source.FetchResult {
	p.fetches++
	return p.result
}

var errClone = errors.New("fatal: repository not found")

// dirGit clones from fixture directories keyed by URL. Unknown URLs fail
// the way git does for an unreachable remote.
type dirGit struct {
	t     *testing.T
	repos map[string]string
}

func (g dirGit) Clone(_ context.Context, url, dest string) error {
	src, ok := g.repos[url]
	if !ok {
		return errClone
	}
	for rel, content := range util.ReadTree(g.t, src) {
		util.WriteFile(g.t, filepath.Join(dest, filepath.FromSlash(rel)), content)
	}
	return nil
}

func (dirGit) Pull(context.Context, string) error { return nil }

type fixture struct {
	env   util.Env
	store *state.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		env:   util.NewEnv(t.TempDir()),
		store: state.NewMemoryStore(nil),
	}
}

// platforms returns a detector yielding adapters rooted under the fixture
// home, one per name.
func (f *fixture) platforms(names ...string) func(util.Env) []adapter.Adapter {
	return func(env util.Env) []adapter.Adapter {
		out := make([]adapter.Adapter, 0, len(names))
		for _, n := range names {
			out = append(out, adapter.NewDir(n, filepath.Join(env.Home, "."+n, "skills")))
		}
		return out
	}
}

func (f *fixture) engine(names []string, opts ...Option) *Engine {
	base := []Option{
		WithDetector(f.platforms(names...)),
		WithClock(func() time.Time { return fixedNow }),
	}
	return New(f.env, f.store, append(base, opts...)...)
}

func (f *fixture) installedPath(platform, fullName string) string {
	return filepath.Join(f.env.Home, "."+platform, "skills", filepath.FromSlash(fullName))
}

// localSource writes skills (name -> manifest) under a fresh directory and
// returns a provider for it.
func localSource(t *testing.T, scope string, skills map[string]string) *source.DirectoryProvider {
	t.Helper()
	root := t.TempDir()
	for name, manifest := range skills {
		util.WriteSkill(t, filepath.Join(root, name), manifest)
	}
	return source.NewDirectoryProvider(scope, root, nil, "")
}

func skillAt(t *testing.T, scope, name string, platforms []string) model.Skill {
	t.Helper()
	dir := util.WriteSkill(t, filepath.Join(t.TempDir(), name), "# "+name+"\n")
	return model.Skill{Name: name, Scope: scope, SourcePath: dir, Platforms: platforms}
}

func pairsFor(r *Report, platform string) []string {
	var out []string
	for _, p := range r.Pairs {
		if p.Platform == platform {
			out = append(out, p.Skill.FullName())
		}
	}
	return out
}
