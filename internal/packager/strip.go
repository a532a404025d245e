package packager

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/extkit/extbuild/internal/fsutil"
	"github.com/gobwas/glob"
)

// stripMatches removes every path under root whose slash-separated path
// relative to root matches one of patterns. Matched directories are removed
// whole.
func stripMatches(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	globs := make([]glob.Glob, len(patterns))
	for i, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling strip pattern %q: %w", pattern, err)
		}
		globs[i] = g
	}

	var matched []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		for _, g := range globs {
			if g.Match(rel) {
				matched = append(matched, rel)
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	for _, rel := range matched {
		if err := fsutil.Remove(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			return nil, err
		}
	}
	return matched, nil
}
