// SPDX-License-Identifier: MPL-2.0

package host

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem covers the file operations the provisioning sequence performs.
type Filesystem interface {
	// Exists reports whether path exists (without following symlinks).
	Exists(path string) (bool, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string, perm os.FileMode) error

	// WriteFile writes data to path, truncating any prior content.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// ReadFile reads the whole file at path.
	ReadFile(path string) ([]byte, error)

	// SyncTree makes dst an exact mirror of src: files are copied over,
	// and entries present in dst but absent from src are deleted. Entries
	// whose base name matches an exclude are skipped on both sides.
	SyncTree(src, dst string, exclude []string) error

	// ChownTree recursively changes ownership of the tree rooted at path.
	ChownTree(path string, uid, gid int) error
}

// OSFilesystem implements Filesystem against the real host.
type OSFilesystem struct{}

// NewOSFilesystem creates a Filesystem backed by the os package.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

// Exists reports whether path exists.
func (*OSFilesystem) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// MkdirAll creates path and any missing parents.
func (*OSFilesystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFile writes data to path, truncating any prior content.
func (*OSFilesystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// ReadFile reads the whole file at path.
func (*OSFilesystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// SyncTree mirrors src into dst. The prune pass removes dst entries that
// are absent from src (or whose type changed); the copy pass then recreates
// directories, regular files and symlinks from src. Excluded names are
// untouched on both sides, so a dst/.git survives even though it is never
// copied.
func (f *OSFilesystem) SyncTree(src, dst string, exclude []string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("source %s is not a directory", src)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	if err := pruneExtraneous(src, dst, exclude); err != nil {
		return err
	}

	return copyTree(src, dst, exclude)
}

// pruneExtraneous deletes dst entries with no counterpart in src.
func pruneExtraneous(src, dst string, exclude []string) error {
	return filepath.WalkDir(dst, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dst {
			return nil
		}
		if isExcluded(d.Name(), exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dst, path)
		if err != nil {
			return err
		}

		srcStat, err := os.Lstat(filepath.Join(src, rel))
		switch {
		case os.IsNotExist(err):
			// Gone from source
		case err != nil:
			return err
		case srcStat.IsDir() != d.IsDir():
			// Type changed; the copy pass recreates it
		default:
			return nil
		}

		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove extraneous %s: %w", path, err)
		}
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	})
}

// copyTree copies directories, regular files and symlinks from src to dst.
func copyTree(src, dst string, exclude []string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == src {
			return nil
		}
		if isExcluded(d.Name(), exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case info.Mode()&os.ModeSymlink != 0:
			if err := copySymlink(path, target); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := copyFile(path, target, info.Mode().Perm()); err != nil {
				return err
			}
		default:
			// Sockets, devices and pipes have no business in a bot tree
			return fmt.Errorf("unsupported file type at %s", path)
		}
		return nil
	})
}

// copyFile copies a regular file, truncating any existing target.
func copyFile(src, dst string, perm os.FileMode) (err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer func() { _ = srcFile.Close() }() // Read-only file; close error non-critical

	// An existing symlink or dir at dst must not swallow the copy
	if stat, lerr := os.Lstat(dst); lerr == nil && !stat.Mode().IsRegular() {
		if rerr := os.RemoveAll(dst); rerr != nil {
			return fmt.Errorf("failed to replace %s: %w", dst, rerr)
		}
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dstFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return nil
}

// copySymlink recreates the symlink at dst with the same target.
func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("failed to read symlink %s: %w", src, err)
	}
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to replace %s: %w", dst, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("failed to create symlink %s: %w", dst, err)
	}
	return nil
}

// ChownTree recursively changes ownership of the tree rooted at path.
// Symlinks themselves are re-owned, not their targets.
func (*OSFilesystem) ChownTree(path string, uid, gid int) error {
	return filepath.WalkDir(path, func(p string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := os.Lchown(p, uid, gid); err != nil {
			return fmt.Errorf("failed to chown %s: %w", p, err)
		}
		return nil
	})
}

func isExcluded(name string, exclude []string) bool {
	for _, ex := range exclude {
		if name == ex {
			return true
		}
	}
	return false
}
