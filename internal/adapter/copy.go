package adapter

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauern/skillhub/internal/logging"
)

// removeExisting deletes whatever is at path without following symlinks.
// A missing path is not an error.
func removeExisting(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("failed to remove previous install %q: %w", path, err)
	}
	logging.Debug("removed previous install", logging.Path(path))
	return nil
}

// copyTree copies the directory tree at src to dst. Symlinks are recreated
// with their original target, not followed.
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

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("failed to read symlink %q: %w", path, err)
			}
			if err := os.Symlink(link, target); err != nil {
				return fmt.Errorf("failed to create symlink %q: %w", target, err)
			}
			return nil
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			// Owner needs write access to fill the directory.
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
			return nil
		default:
			return copyFile(path, target)
		}
	})
}

// copyFile copies one regular file, keeping its permission bits.
func copyFile(src, dst string) error {
	// #nosec G304 - src is inside a discovered skill directory
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", src, err)
	}

	// #nosec G302 G304 - mode mirrors the source file
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %q: %w", src, err)
	}
	return out.Close()
}
