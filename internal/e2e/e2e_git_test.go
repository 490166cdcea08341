package e2e

import (
	"os"
	"path/filepath"
	"testing"
)

func TestE2E_GitSource(t *testing.T) {
	h := NewHarness(t)
	h.PlatformFixture("claude")
	codex := h.PlatformFixture("codex")

	repo := h.GitRepoFixture(func(f *Fixture) {
		f.WriteSkill("skills/deploy", []string{"codex"}, "Deploy\n")
		f.WriteSkill("skills/lint", nil, "Lint\n")
	})
	url := "file://" + repo.Path("")

	r := h.Run("source", "add", "acme", url)
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "Added git source @acme")

	r = h.Run("sync")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "Installed: 3 pairs (2 skills)")

	AssertFileContains(t, codex.Path("@acme/deploy/SKILL.md"), "Deploy")
	AssertNotInstalled(t, h, "claude", "@acme/deploy")
	AssertInstalled(t, h, "claude", "@acme/lint")
	AssertInstalled(t, h, "codex", "@acme/lint")
	AssertFileExists(t, filepath.Join(h.Env().CacheDir(), "@acme", filepath.Base(repo.Path("")), "skills", "lint", "SKILL.md"))

	// New commits are pulled on the next sync.
	repo.WriteSkill("skills/review", nil, "Review\n")
	repo.Commit("review")

	r = h.Run("sync")
	AssertSuccess(t, r)
	AssertInstalled(t, h, "claude", "@acme/review")

	// With the origin gone the cached copy is used and the source is stale.
	if err := os.RemoveAll(repo.Path("")); err != nil {
		t.Fatal(err)
	}
	r = h.Run("sync")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "@acme (stale)")
	AssertOutputContains(t, r, "Installed: 5 pairs (3 skills)")
}

func TestE2E_GitSourceCloneFailure(t *testing.T) {
	h := NewHarness(t)
	h.PlatformFixture("claude")

	missing := "file://" + filepath.Join(h.HomeDir(), "no-such-repo")
	AssertSuccess(t, h.Run("source", "add", "ghost", missing))

	r := h.Run("sync")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "@ghost (unavailable)")
	AssertOutputContains(t, r, "Installed: 0 pairs (0 skills)")
}

func TestE2E_DuplicateSkillPolicies(t *testing.T) {
	tests := map[string]struct {
		policy    string
		want      string
		installed string
	}{
		"last wins by default": {policy: "", want: "from local", installed: "Installed: 2 pairs (1 skills)"},
		"first wins":           {policy: "first-wins", want: "from git", installed: "Installed: 1 pairs (1 skills)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHarness(t)
			claude := h.PlatformFixture("claude")

			repo := h.GitRepoFixture(func(f *Fixture) {
				f.WriteSkill("foo", nil, "from git\n")
			})
			local := h.TempFixture()
			local.WriteSkill("foo", nil, "from local\n")

			AssertSuccess(t, h.Run("source", "add", "team", "file://"+repo.Path("")))
			AssertSuccess(t, h.Run("source", "add", "team", local.Path("")))
			if tt.policy != "" {
				AssertSuccess(t, h.Run("config", "sync.on_duplicate="+tt.policy))
			}

			r := h.Run("sync")
			AssertSuccess(t, r)
			AssertOutputContains(t, r, "Duplicate skills")
			AssertOutputContains(t, r, "@team/foo")
			AssertFileContains(t, claude.Path("@team/foo/SKILL.md"), tt.want)
			AssertOutputContains(t, r, tt.installed)
		})
	}
}
