// Package adapter installs skills into the skill directories of target
// platforms. Each platform is one variant behind the Adapter interface; all of
// them share the same on-disk layout, where a skill lands at
// skills_dir/@scope/name as a verbatim copy of its source tree.
package adapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauern/skillhub/internal/logging"
	"github.com/klauern/skillhub/internal/model"
)

// Adapter is a target platform's installation surface.
type Adapter interface {
	// Name is the platform name matched against a skill's platforms list.
	Name() string
	// SkillsDir is the absolute root installed skills live under.
	SkillsDir() string
	// IsInstalled reports whether the platform is present on this host.
	IsInstalled() bool
	// InstallSkill replaces SkillsDir()/name with a copy of the tree at src.
	InstallSkill(src, name string) error
	// ListInstalled returns the top-level entries under SkillsDir().
	ListInstalled() ([]string, error)
}

// dirAdapter implements Adapter for a platform rooted at skillsDir.
type dirAdapter struct {
	name      string
	skillsDir string
}

// NewDir returns an adapter for an arbitrary platform name and skill root.
// The known platforms have their own constructors.
func NewDir(name, skillsDir string) Adapter {
	return &dirAdapter{name: name, skillsDir: skillsDir}
}

func (a *dirAdapter) Name() string      { return a.name }
func (a *dirAdapter) SkillsDir() string { return a.skillsDir }

// IsInstalled is true iff the parent of the skill root exists. The skill root
// itself is created on first install.
func (a *dirAdapter) IsInstalled() bool {
	info, err := os.Stat(filepath.Dir(a.skillsDir))
	return err == nil && info.IsDir()
}

func (a *dirAdapter) InstallSkill(src, name string) error {
	dst, err := a.target(name)
	if err != nil {
		return err
	}

	src, err = filepath.EvalSymlinks(src)
	if err != nil {
		return fmt.Errorf("skill source unavailable: %w", err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("skill source %q: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("skill source %q is not a directory", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("failed to create %q: %w", filepath.Dir(dst), err)
	}
	if err := removeExisting(dst); err != nil {
		return err
	}
	if err := copyTree(src, dst); err != nil {
		return fmt.Errorf("failed to install %s to %s: %w", name, a.name, err)
	}

	logging.Debug("installed skill",
		logging.Platform(a.name),
		logging.Skill(name),
		logging.Path(dst),
	)
	return nil
}

func (a *dirAdapter) ListInstalled() ([]string, error) {
	entries, err := os.ReadDir(a.skillsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %q: %w", a.skillsDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if isDir(a.skillsDir, e) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// isDir reports whether e is a directory, following a symlinked entry to
// its target.
func isDir(parent string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}

// target resolves name under the skill root and rejects names that would
// escape it.
func (a *dirAdapter) target(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if name == "" || filepath.IsAbs(clean) || clean == "." || clean == ".." ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid skill install name %q", name)
	}
	return filepath.Join(a.skillsDir, clean), nil
}

// ListNamespaced returns the "@scope/name" skills installed on a, sorted.
// Entries outside an @scope directory are not managed by skillhub and are
// left out.
func ListNamespaced(a Adapter) ([]string, error) {
	top, err := a.ListInstalled()
	if err != nil {
		return nil, err
	}

	var skills []string
	for _, scopeDir := range top {
		if !strings.HasPrefix(scopeDir, "@") || len(scopeDir) == 1 {
			continue
		}
		scopePath := filepath.Join(a.SkillsDir(), scopeDir)
		entries, err := os.ReadDir(scopePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read scope %q: %w", scopeDir, err)
		}
		for _, e := range entries {
			if isDir(scopePath, e) {
				skills = append(skills, model.FullName(strings.TrimPrefix(scopeDir, "@"), e.Name()))
			}
		}
	}
	slices.Sort(skills)
	return skills, nil
}
