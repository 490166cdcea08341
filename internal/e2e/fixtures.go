package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixture writes files below a fixed root: a platform skills directory, a
// local skill source or a git working tree.
type Fixture struct {
	t    *testing.T
	root string
}

// Path joins rel onto the fixture root.
func (f *Fixture) Path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

// WriteFile writes content at rel, creating parent directories.
func (f *Fixture) WriteFile(rel, content string) string {
	f.t.Helper()
	path := f.Path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteSkill writes relDir/SKILL.md with front matter naming the skill.
// A non-nil platforms list becomes a flow-style platforms field.
func (f *Fixture) WriteSkill(relDir string, platforms []string, body string) string {
	f.t.Helper()
	front := []string{"---", "name: " + filepath.Base(relDir)}
	if platforms != nil {
		front = append(front, "platforms: ["+strings.Join(platforms, ", ")+"]")
	}
	front = append(front, "---", "", body)
	f.WriteFile(filepath.Join(relDir, "SKILL.md"), strings.Join(front, "\n"))
	return f.Path(relDir)
}

// Git runs git inside the fixture root and stops the test on failure.
func (f *Fixture) Git(args ...string) {
	f.t.Helper()
	cmd := exec.Command("git", append([]string{"-C", f.root}, args...)...) // #nosec G204 - test input
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
	out, err := cmd.CombinedOutput()
	require.NoError(f.t, err, "git %s\n%s", strings.Join(args, " "), out)
}

// Commit stages everything and records a commit.
func (f *Fixture) Commit(msg string) {
	f.t.Helper()
	f.Git("add", ".")
	f.Git("-c", "user.name=skillhub", "-c", "user.email=skillhub@example.com", "commit", "--quiet", "-m", msg)
}

// PlatformFixture creates the platform's home directory so the detector
// sees it, and returns a fixture rooted at its skills directory.
func (h *Harness) PlatformFixture(platform string) *Fixture {
	h.t.Helper()
	dir := h.SkillsDir(platform)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(dir), 0o750))
	return &Fixture{t: h.t, root: dir}
}

// TempFixture returns a fixture over a fresh temporary directory.
func (h *Harness) TempFixture() *Fixture {
	return &Fixture{t: h.t, root: h.t.TempDir()}
}

// GitRepoFixture builds a repository with one commit holding the files
// written by fill. The test is skipped without a git binary.
func (h *Harness) GitRepoFixture(fill func(*Fixture)) *Fixture {
	h.t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		h.t.Skip("git not installed")
	}
	f := h.TempFixture()
	fill(f)
	f.Git("init", "--quiet")
	f.Commit("skills")
	return f
}
