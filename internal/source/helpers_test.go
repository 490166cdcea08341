package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/skillhub/internal/util"
)

// fakeGit serves clones from fixture directories keyed by URL.
type fakeGit struct {
	repos   map[string]string
	pullErr error
	clones  int
	pulls   int
}

func (f *fakeGit) Clone(_ context.Context, url, dest string) error {
	f.clones++
	src, ok := f.repos[url]
	if !ok {
		return fmt.Errorf("repository %s not found", url)
	}
	return copyTree(src, dest)
}

func (f *fakeGit) Pull(_ context.Context, _ string) error {
	f.pulls++
	return f.pullErr
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		// #nosec G304 - test fixture
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o600)
	})
}

// writeRepo builds a fixture repository with one SKILL.md per entry in skills,
// keyed by relative skill directory.
func writeRepo(t *testing.T, skills map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for dir, manifest := range skills {
		util.WriteSkill(t, filepath.Join(root, dir), manifest)
	}
	return root
}

func skillNames(r FetchResult) []string {
	names := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		names = append(names, s.Name)
	}
	return names
}
