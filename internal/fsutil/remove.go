package fsutil

import (
	"fmt"
	"os"

	"github.com/magefile/mage/sh"
)

// Remove deletes a file or a whole directory tree. A missing path is not an
// error, which makes every "delete if exists, then recreate" step idempotent.
func Remove(path string) error {
	if err := sh.Rm(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// RemoveAll calls Remove for each path and stops at the first failure.
func RemoveAll(paths ...string) error {
	for _, p := range paths {
		if err := Remove(p); err != nil {
			return err
		}
	}
	return nil
}

// Exists reports whether path exists. Broken symlinks count as existing.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Recreate removes dir if present and creates it again, empty.
func Recreate(dir string) error {
	if err := Remove(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
