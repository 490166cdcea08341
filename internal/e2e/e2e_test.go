package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestE2E_NoSources(t *testing.T) {
	h := NewHarness(t)
	h.PlatformFixture("claude")

	r := h.Run("sync")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "Platforms: claude")
	AssertOutputContains(t, r, "No sources configured")
	AssertFileNotExists(t, h.Env().StatePath())
}

func TestE2E_LocalSourceFullFlow(t *testing.T) {
	h := NewHarness(t)
	claude := h.PlatformFixture("claude")
	codex := h.PlatformFixture("codex")

	src := h.TempFixture()
	src.WriteSkill("foo", nil, "Foo skill\n")
	src.WriteFile("foo/scripts/run.sh", "#!/bin/sh\necho foo\n")
	src.WriteSkill("nested/bar", nil, "Bar skill\n")
	src.WriteFile("not-a-skill/README.md", "ignored\n")

	AssertSuccess(t, h.Run("source", "add", "demo", src.Path("")))

	r := h.Run("sync")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "Platforms: claude, codex")
	AssertOutputContains(t, r, "Installed: 4 pairs (2 skills)")

	for _, f := range []*Fixture{claude, codex} {
		AssertFileContains(t, f.Path("@demo/foo/SKILL.md"), "Foo skill")
		AssertFileEquals(t, f.Path("@demo/foo/scripts/run.sh"), "#!/bin/sh\necho foo\n")
		AssertFileContains(t, f.Path("@demo/bar/SKILL.md"), "Bar skill")
		AssertFileNotExists(t, f.Path("@demo/not-a-skill"))
	}
	AssertFileNotExists(t, h.SkillsDir("gemini"))

	st := LoadState(t, h)
	if st.LastSyncTime == nil {
		t.Error("expected last sync time to be recorded")
	}
	AssertStateSkills(t, h, "@demo/bar", "@demo/foo")

	r = h.Run("status")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "Installed skills: 2")
	AssertOutputContains(t, r, "@demo/foo")

	r = h.Run("list", "--json")
	AssertSuccess(t, r)
	var listed []map[string]any
	if err := json.Unmarshal([]byte(r.Stdout), &listed); err != nil {
		t.Fatalf("list --json: %v\n%s", err, r.Stdout)
	}
	if len(listed) != 2 {
		t.Errorf("expected 2 listed skills, got %d", len(listed))
	}
}

func TestE2E_ResyncReplacesInstalledCopy(t *testing.T) {
	h := NewHarness(t)
	claude := h.PlatformFixture("claude")

	src := h.TempFixture()
	src.WriteSkill("foo", nil, "v1\n")
	src.WriteFile("foo/old.txt", "old\n")
	AssertSuccess(t, h.Run("source", "add", "demo", src.Path("")))
	AssertSuccess(t, h.Run("sync", "--quiet"))
	AssertFileExists(t, claude.Path("@demo/foo/old.txt"))

	if err := os.Remove(src.Path("foo/old.txt")); err != nil {
		t.Fatal(err)
	}
	src.WriteSkill("foo", nil, "v2\n")

	AssertSuccess(t, h.Run("sync", "--quiet"))
	AssertFileContains(t, claude.Path("@demo/foo/SKILL.md"), "v2")
	AssertFileNotExists(t, claude.Path("@demo/foo/old.txt"))
}

func TestE2E_RemovedSourceKeepsFilesAndState(t *testing.T) {
	h := NewHarness(t)
	h.PlatformFixture("claude")

	src := h.TempFixture()
	src.WriteSkill("foo", nil, "foo\n")
	AssertSuccess(t, h.Run("source", "add", "demo", src.Path("")))
	AssertSuccess(t, h.Run("sync", "--quiet"))

	AssertSuccess(t, h.Run("source", "remove", "demo"))
	r := h.Run("sync")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "No sources configured")

	// No sources means nothing is recorded, so the previous state stays.
	AssertStateSkills(t, h, "@demo/foo")
	AssertInstalled(t, h, "claude", "@demo/foo")
}

func TestE2E_UnavailableLocalSource(t *testing.T) {
	h := NewHarness(t)
	h.PlatformFixture("gemini")

	good := h.TempFixture()
	good.WriteSkill("ok", nil, "ok\n")
	AssertSuccess(t, h.Run("source", "add", "missing", filepath.Join(h.HomeDir(), "nowhere")))
	AssertSuccess(t, h.Run("source", "add", "good", good.Path("")))

	r := h.Run("sync")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "@missing (unavailable)")
	AssertOutputContains(t, r, "Sync completed with problems")
	AssertInstalled(t, h, "gemini", "@good/ok")
}

func TestE2E_InstallOne(t *testing.T) {
	h := NewHarness(t)
	h.PlatformFixture("codex")

	src := h.TempFixture()
	src.WriteSkill("foo", nil, "foo\n")
	src.WriteSkill("bar", nil, "bar\n")
	AssertSuccess(t, h.Run("source", "add", "demo", src.Path("")))

	r := h.Run("install", "@demo/bar")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "Installed to codex")
	AssertInstalled(t, h, "codex", "@demo/bar")
	AssertNotInstalled(t, h, "codex", "@demo/foo")
	AssertFileNotExists(t, h.Env().StatePath())

	r = h.Run("install", "@demo/baz")
	AssertErrorContains(t, r, "not found")
	AssertExitCode(t, r, 1)

	r = h.Run("install", "demo/bar")
	AssertErrorContains(t, r, "@scope/name")
}

func TestE2E_InstallWithoutTerminal(t *testing.T) {
	h := NewHarness(t)

	r := h.RunWithStdin("", "install")
	AssertErrorContains(t, r, "@scope/name")
}

func TestE2E_CheckAutoSync(t *testing.T) {
	h := NewHarness(t)
	claude := h.PlatformFixture("claude")

	src := h.TempFixture()
	src.WriteSkill("foo", nil, "foo\n")
	AssertSuccess(t, h.Run("source", "add", "demo", src.Path("")))

	AssertSuccess(t, h.Run("config", "auto_sync=false"))
	r := h.Run("check-auto-sync")
	AssertSuccess(t, r)
	AssertOutputEquals(t, r, "")
	AssertNotInstalled(t, h, "claude", "@demo/foo")

	AssertSuccess(t, h.Run("config", "auto_sync=true"))
	r = h.Run("check-auto-sync")
	AssertSuccess(t, r)
	AssertOutputEquals(t, r, "")
	AssertInstalled(t, h, "claude", "@demo/foo")

	// Just synced, so the next check within the interval does nothing.
	if err := os.RemoveAll(claude.Path("@demo")); err != nil {
		t.Fatal(err)
	}
	AssertSuccess(t, h.Run("check-auto-sync"))
	AssertNotInstalled(t, h, "claude", "@demo/foo")

	// A zero interval is always due.
	AssertSuccess(t, h.Run("config", "sync_interval_hours=0"))
	AssertSuccess(t, h.Run("check-auto-sync"))
	AssertInstalled(t, h, "claude", "@demo/foo")
}

func TestE2E_ConfigRoundTrip(t *testing.T) {
	h := NewHarness(t)

	r := h.Run("config", "sync.on_duplicate=first-wins")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "Set sync.on_duplicate = first-wins")

	r = h.Run("config")
	AssertSuccess(t, r)
	AssertOutputContains(t, r, "on_duplicate: first-wins")

	r = h.Run("config", "daemon.schedule=not a schedule")
	AssertErrorContains(t, r, "daemon.schedule")
}
