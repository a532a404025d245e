package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/sh"
)

// SkipFunc reports whether an entry, identified by its path relative to the
// copy root, should be left out of a copy.
type SkipFunc func(rel string, entry os.DirEntry) bool

// CopyDir recursively copies src into dst, merging with whatever dst already
// holds and overwriting files of the same name. Symlinks are recreated, not
// followed. A nil skip copies everything.
func CopyDir(src, dst string, skip SkipFunc) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}

	return copyDir(src, dst, "", srcInfo.Mode().Perm(), skip)
}

func copyDir(src, dst, rel string, perm os.FileMode, skip SkipFunc) error {
	if err := os.MkdirAll(dst, perm|0o700); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	for _, entry := range entries {
		entryRel := filepath.Join(rel, entry.Name())
		if skip != nil && skip(entryRel, entry) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			info, err := entry.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", srcPath, err)
			}
			if err := copyDir(srcPath, dstPath, entryRel, info.Mode().Perm(), skip); err != nil {
				return err
			}
		case entry.Type()&os.ModeSymlink != 0:
			if err := copySymlink(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Sockets, devices and pipes are not part of a source tree.
	}

	return nil
}

// CopyFile copies a single file, creating the destination's parent
// directories and preserving the source permissions.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", dst, err)
	}

	if err := sh.Copy(dst, src); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", dst, err)
	}
	return nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("reading link %s: %w", src, err)
	}
	if err := sh.Rm(dst); err != nil {
		return fmt.Errorf("replacing %s: %w", dst, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("linking %s: %w", dst, err)
	}
	return nil
}
