package fsutil

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrExists is returned by Move when the destination is already taken.
var ErrExists = errors.New("destination already exists")

// Move relocates one file or directory. It never overwrites: an existing
// destination fails with ErrExists. When a plain rename crosses devices the
// entry is copied and the source removed afterwards.
func Move(from, to string) error {
	if _, err := os.Lstat(to); err == nil {
		return fmt.Errorf("moving %s: %s: %w", from, to, ErrExists)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("moving %s: stat %s: %w", from, to, err)
	}

	err := os.Rename(from, to)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("moving %s to %s: %w", from, to, err)
	}

	if err := copyAny(from, to); err != nil {
		// Leave the source intact; drop the half-written copy.
		_ = Remove(to)
		return fmt.Errorf("moving %s to %s across devices: %w", from, to, err)
	}
	if err := Remove(from); err != nil {
		return fmt.Errorf("moving %s to %s: %w", from, to, err)
	}
	return nil
}

func copyAny(from, to string) error {
	info, err := os.Lstat(from)
	if err != nil {
		return err
	}
	switch {
	case info.IsDir():
		return CopyDir(from, to, nil)
	case info.Mode()&os.ModeSymlink != 0:
		return copySymlink(from, to)
	default:
		return CopyFile(from, to)
	}
}
