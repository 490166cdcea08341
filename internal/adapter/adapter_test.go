package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klauern/skillhub/internal/model"
	"github.com/klauern/skillhub/internal/util"
)

func newSkill(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "foo")
	util.WriteSkill(t, src, "---\nname: foo\n---\n# Foo\n")
	util.WriteFile(t, filepath.Join(src, "scripts", "run.sh"), "#!/bin/sh\necho hi\n")
	util.WriteFile(t, filepath.Join(src, "docs", "deep", "notes.md"), "notes")
	require.NoError(t, os.Symlink("docs/deep/notes.md", filepath.Join(src, "NOTES.md")))
	return src
}

func TestKnownPlatforms(t *testing.T) {
	home := "/home/u"
	tests := map[string]struct {
		adapter Adapter
		name    string
		dir     string
	}{
		"claude": {adapter: NewClaude(home), name: "claude", dir: "/home/u/.claude/skills"},
		"codex":  {adapter: NewCodex(home), name: "codex", dir: "/home/u/.codex/skills"},
		"gemini": {adapter: NewGemini(home), name: "gemini", dir: "/home/u/.gemini/skills"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.adapter.Name())
			assert.Equal(t, filepath.FromSlash(tt.dir), tt.adapter.SkillsDir())

			byPlatform, err := For(model.Platform(tt.name), home)
			require.NoError(t, err)
			assert.Equal(t, tt.adapter.SkillsDir(), byPlatform.SkillsDir())
		})
	}

	_, err := For(model.Platform("cursor"), home)
	assert.Error(t, err)
}

func TestIsInstalled(t *testing.T) {
	home := t.TempDir()
	a := NewCodex(home)
	assert.False(t, a.IsInstalled())

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".codex"), 0o750))
	assert.True(t, a.IsInstalled(), "parent of the skill root is enough")

	util.WriteFile(t, filepath.Join(home, ".gemini"), "a file, not a directory")
	assert.False(t, NewGemini(home).IsInstalled())
}

func TestInstallSkill_CopiesTree(t *testing.T) {
	src := newSkill(t)
	a := NewDir("p", filepath.Join(t.TempDir(), ".p", "skills"))

	require.NoError(t, a.InstallSkill(src, "@demo/foo"))

	dst := filepath.Join(a.SkillsDir(), "@demo", "foo")
	assert.Equal(t, util.ReadTree(t, src), util.ReadTree(t, dst))

	info, err := os.Stat(filepath.Join(dst, "scripts", "run.sh"))
	require.NoError(t, err)
	srcInfo, err := os.Stat(filepath.Join(src, "scripts", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, srcInfo.Mode().Perm(), info.Mode().Perm())

	link, err := os.Readlink(filepath.Join(dst, "NOTES.md"))
	require.NoError(t, err)
	assert.Equal(t, "docs/deep/notes.md", link)
}

func TestInstallSkill_Idempotent(t *testing.T) {
	src := newSkill(t)
	a := NewDir("p", filepath.Join(t.TempDir(), "skills"))
	dst := filepath.Join(a.SkillsDir(), "@demo", "foo")

	require.NoError(t, a.InstallSkill(src, "@demo/foo"))
	once := util.ReadTree(t, dst)

	require.NoError(t, a.InstallSkill(src, "@demo/foo"))
	assert.Equal(t, once, util.ReadTree(t, dst))
}

func TestInstallSkill_ReplacesNotMerges(t *testing.T) {
	src := newSkill(t)
	a := NewDir("p", filepath.Join(t.TempDir(), "skills"))
	dst := filepath.Join(a.SkillsDir(), "@demo", "foo")
	util.WriteFile(t, filepath.Join(dst, "stale.txt"), "left over")

	require.NoError(t, a.InstallSkill(src, "@demo/foo"))

	assert.NoFileExists(t, filepath.Join(dst, "stale.txt"))
	assert.Equal(t, util.ReadTree(t, src), util.ReadTree(t, dst))
}

func TestInstallSkill_ReplacesSymlinkDestination(t *testing.T) {
	src := newSkill(t)
	other := t.TempDir()
	util.WriteFile(t, filepath.Join(other, "keep.txt"), "must survive")

	a := NewDir("p", filepath.Join(t.TempDir(), "skills"))
	require.NoError(t, os.MkdirAll(filepath.Join(a.SkillsDir(), "@demo"), 0o750))
	require.NoError(t, os.Symlink(other, filepath.Join(a.SkillsDir(), "@demo", "foo")))

	require.NoError(t, a.InstallSkill(src, "@demo/foo"))

	assert.FileExists(t, filepath.Join(other, "keep.txt"), "symlink target must not be touched")
	info, err := os.Lstat(filepath.Join(a.SkillsDir(), "@demo", "foo"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInstallSkill_Errors(t *testing.T) {
	src := newSkill(t)

	tests := map[string]struct {
		src  string
		name string
	}{
		"missing source":  {src: filepath.Join(t.TempDir(), "gone"), name: "@demo/foo"},
		"source is file":  {src: filepath.Join(src, "SKILL.md"), name: "@demo/foo"},
		"empty name":      {src: src, name: ""},
		"escaping name":   {src: src, name: "../outside"},
		"absolute name":   {src: src, name: "/etc/foo"},
		"dot name":        {src: src, name: "."},
		"nested escaping": {src: src, name: "@demo/../../x"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "skills")
			a := NewDir("p", root)
			assert.Error(t, a.InstallSkill(tt.src, tt.name))
		})
	}
}

func TestInstallSkill_MissingSourceKeepsPreviousInstall(t *testing.T) {
	a := NewDir("p", filepath.Join(t.TempDir(), "skills"))
	require.NoError(t, a.InstallSkill(newSkill(t), "@demo/foo"))

	err := a.InstallSkill(filepath.Join(t.TempDir(), "gone"), "@demo/foo")
	assert.Error(t, err)
	assert.FileExists(t, filepath.Join(a.SkillsDir(), "@demo", "foo", "SKILL.md"))
}

func TestListInstalled(t *testing.T) {
	a := NewDir("p", filepath.Join(t.TempDir(), "skills"))

	names, err := a.ListInstalled()
	require.NoError(t, err)
	assert.Empty(t, names)

	src := newSkill(t)
	require.NoError(t, a.InstallSkill(src, "@demo/foo"))
	require.NoError(t, a.InstallSkill(src, "@acme/bar"))
	require.NoError(t, a.InstallSkill(src, "handmade"))
	util.WriteFile(t, filepath.Join(a.SkillsDir(), "README.md"), "ignored")

	names, err = a.ListInstalled()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"@acme", "@demo", "handmade"}, names)

	namespaced, err := ListNamespaced(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"@acme/bar", "@demo/foo"}, namespaced)
}

func TestListInstalled_FollowsSymlinkedDirs(t *testing.T) {
	a := NewDir("p", filepath.Join(t.TempDir(), "skills"))
	src := newSkill(t)
	require.NoError(t, a.InstallSkill(src, "@demo/foo"))

	elsewhere := t.TempDir()
	require.NoError(t, os.Symlink(src, filepath.Join(a.SkillsDir(), "@demo", "linked")))
	require.NoError(t, os.Symlink(elsewhere, filepath.Join(a.SkillsDir(), "handmade")))
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "missing"), filepath.Join(a.SkillsDir(), "dangling")))

	names, err := a.ListInstalled()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"@demo", "handmade"}, names)

	namespaced, err := ListNamespaced(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"@demo/foo", "@demo/linked"}, namespaced)
}
