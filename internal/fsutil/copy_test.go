package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCopyDirCopiesTree(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	writeFile(t, filepath.Join(src, "files", "a.txt"), "a")
	writeFile(t, filepath.Join(src, "files", "nested", "b.txt"), "b")
	writeFile(t, filepath.Join(src, "scripts", "run.sh"), "#!/bin/sh")

	dst := filepath.Join(tmp, "dst")
	require.NoError(t, CopyDir(src, dst, nil))

	data, err := os.ReadFile(filepath.Join(dst, "files", "nested", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
	assert.FileExists(t, filepath.Join(dst, "scripts", "run.sh"))
}

func TestCopyDirMergesAndOverwrites(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")
	writeFile(t, filepath.Join(src, "shared.txt"), "new")
	writeFile(t, filepath.Join(dst, "shared.txt"), "old")
	writeFile(t, filepath.Join(dst, "kept.txt"), "kept")

	require.NoError(t, CopyDir(src, dst, nil))

	data, err := os.ReadFile(filepath.Join(dst, "shared.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.FileExists(t, filepath.Join(dst, "kept.txt"))
}

func TestCopyDirSkip(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	writeFile(t, filepath.Join(src, "keep.txt"), "x")
	writeFile(t, filepath.Join(src, "node_modules", "dep", "index.js"), "x")

	dst := filepath.Join(tmp, "dst")
	skip := func(rel string, entry os.DirEntry) bool { return entry.Name() == "node_modules" }
	require.NoError(t, CopyDir(src, dst, skip))

	assert.FileExists(t, filepath.Join(dst, "keep.txt"))
	assert.NoDirExists(t, filepath.Join(dst, "node_modules"))
}

func TestCopyDirRejectsFile(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file.txt")
	writeFile(t, file, "x")

	assert.Error(t, CopyDir(file, filepath.Join(tmp, "dst"), nil))
}

func TestCopyFilePreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	tmp := t.TempDir()
	src := filepath.Join(tmp, "tool")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh"), 0o755))

	dst := filepath.Join(tmp, "out", "tool")
	require.NoError(t, CopyFile(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
