//nolint:revive // var-naming - package name is meaningful
package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// WriteSkill creates dir/SKILL.md with the given manifest body and returns dir.
func WriteSkill(t *testing.T, dir, manifest string) string {
	t.Helper()
	WriteFile(t, filepath.Join(dir, "SKILL.md"), manifest)
	return dir
}

// ReadTree returns every regular file under root keyed by slash-separated
// relative path. Symlinks are recorded by their target prefixed with "->".
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			tree[filepath.ToSlash(rel)] = "->" + target
			return nil
		}
		// #nosec G304 - path comes from walking a test directory
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree %s: %v", root, err)
	}
	return tree
}
