package source

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Git fetches repository snapshots to local paths.
type Git interface {
	// Clone makes a shallow, single-revision copy of url at dest.
	Clone(ctx context.Context, url, dest string) error
	// Pull fast-forwards the working copy at dir.
	Pull(ctx context.Context, dir string) error
}

// ExecGit runs the git binary.
type ExecGit struct {
	// Binary is the git executable. Defaults to "git" on PATH.
	Binary string
}

// Clone runs `git clone --depth 1 url dest`.
func (g ExecGit) Clone(ctx context.Context, url, dest string) error {
	return g.run(ctx, "clone", "--depth", "1", url, dest)
}

// Pull runs `git -C dir pull --ff-only`.
func (g ExecGit) Pull(ctx context.Context, dir string) error {
	return g.run(ctx, "-C", dir, "pull", "--ff-only")
}

func (g ExecGit) run(ctx context.Context, args ...string) error {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	// #nosec G204 - arguments come from the user's own source index
	cmd := exec.CommandContext(ctx, bin, args...)
	// Never block a sync on a credential prompt.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s failed: %w\n%s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// repoName derives the cache directory name from a repository URL: the last
// path segment with any .git suffix removed.
func repoName(url string) string {
	name := strings.TrimRight(url, "/")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return "repo"
	}
	return name
}
