package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauern/skillhub/internal/model"
)

// findManifests walks root for SKILL.md files and returns the directories that
// contain them, in lexical walk order, restricted by filter. A symlinked root
// is followed; returned paths stay under root as given. The walk stops at the
// first filesystem error; directories found before it are returned along with
// the error.
func findManifests(root string, filter Filter) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceNotFound, root)
	}

	// WalkDir does not descend into a symlinked root, so walk its target.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", root, err)
	}

	var dirs []string
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != model.ManifestFile {
			return nil
		}
		dir := filepath.Dir(path)
		if !filter.Allows(filepath.Base(dir)) {
			return nil
		}
		rel, err := filepath.Rel(walkRoot, dir)
		if err != nil {
			return err
		}
		dirs = append(dirs, filepath.Join(root, rel))
		return nil
	})
	if err != nil {
		return dirs, fmt.Errorf("scan of %q stopped early: %w", root, err)
	}
	return dirs, nil
}
