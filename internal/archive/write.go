package archive

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
)

// Write zips the contents of srcDir into target with paths relative to
// srcDir. Every entry carries modTime. The archive is written to a
// temporary sibling of target and renamed once the zip writer and the file
// are closed; on failure no file exists under the target name.
func Write(srcDir, target string, modTime time.Time) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := writeZip(tmp, srcDir, modTime); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting archive mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("finalizing archive %s: %w", target, err)
	}
	return nil
}

func writeZip(w io.Writer, srcDir string, modTime time.Time) error {
	zw := zip.NewWriter(w)

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("resolving relative path: %w", err)
		}
		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("reading file info %s: %w", path, err)
		}
		if !info.Mode().IsDir() && !info.Mode().IsRegular() {
			// Symlinks and special files are not part of a package.
			return nil
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("creating header for %s: %w", rel, err)
		}
		header.Name = filepath.ToSlash(rel)
		header.Modified = modTime
		if d.IsDir() {
			header.Name += "/"
			header.Method = zip.Store
		} else {
			header.Method = zip.Deflate
		}

		entry, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("creating entry %s: %w", header.Name, err)
		}
		if d.IsDir() {
			return nil
		}
		return copyInto(entry, path)
	})
	if walkErr != nil {
		_ = zw.Close()
		return fmt.Errorf("archiving %s: %w", srcDir, walkErr)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip writer: %w", err)
	}
	return nil
}

func copyInto(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
