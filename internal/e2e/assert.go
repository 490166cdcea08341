package e2e

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klauern/skillhub/internal/state"
)

// AssertSuccess stops the test when the command failed.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	require.NoError(t, r.Err, "stdout: %s\nstderr: %s", r.Stdout, r.Stderr)
}

// AssertErrorContains stops the test unless the command failed with an
// error mentioning substr.
func AssertErrorContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	require.Error(t, r.Err, "stdout: %s", r.Stdout)
	assert.Contains(t, r.Err.Error(), substr)
}

func AssertExitCode(t *testing.T, r *Result, code int) {
	t.Helper()
	assert.Equal(t, code, r.ExitCode, "error: %v", r.Err)
}

func AssertOutputContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	assert.Contains(t, r.Stdout, substr)
}

func AssertOutputEquals(t *testing.T, r *Result, want string) {
	t.Helper()
	assert.Equal(t, want, r.Stdout)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.NoError(t, err, "expected %s to exist", path)
}

func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expected %s to be absent", path)
}

// AssertFileContains reads path and checks it contains substr.
func AssertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 - test-controlled path
	require.NoError(t, err)
	assert.Contains(t, string(data), substr)
}

func AssertFileEquals(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 - test-controlled path
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

// installPath maps "@scope/name" to its directory under a platform's
// skills directory.
func (h *Harness) installPath(platform, ref string) string {
	return filepath.Join(h.SkillsDir(platform), filepath.FromSlash(ref))
}

// AssertInstalled checks that ref was installed for platform with a
// SKILL.md manifest.
func AssertInstalled(t *testing.T, h *Harness, platform, ref string) {
	t.Helper()
	AssertFileExists(t, filepath.Join(h.installPath(platform, ref), "SKILL.md"))
}

func AssertNotInstalled(t *testing.T, h *Harness, platform, ref string) {
	t.Helper()
	AssertFileNotExists(t, h.installPath(platform, ref))
}

// LoadState reads the state file written by the last sync.
func LoadState(t *testing.T, h *Harness) *state.State {
	t.Helper()
	st, err := state.NewFileStore(h.Env().StatePath()).Load()
	require.NoError(t, err)
	return st
}

// AssertStateSkills checks the installed skill list recorded in state.
// It is sorted on write, so refs must be given in order.
func AssertStateSkills(t *testing.T, h *Harness, refs ...string) {
	t.Helper()
	got := LoadState(t, h).InstalledSkills
	if len(refs) == 0 {
		assert.Empty(t, got)
		return
	}
	assert.Equal(t, refs, got, "installed: %s", strings.Join(got, ", "))
}
