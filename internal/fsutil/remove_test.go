package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveMissingIsNoop(t *testing.T) {
	assert.NoError(t, Remove(filepath.Join(t.TempDir(), "missing")))
}

func TestRemoveTree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tree")
	writeFile(t, filepath.Join(dir, "a", "b.txt"), "x")

	require.NoError(t, Remove(dir))
	assert.False(t, Exists(dir))
}

func TestRecreateEmptiesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	writeFile(t, filepath.Join(dir, "stale.txt"), "x")

	require.NoError(t, Recreate(dir))

	assert.True(t, IsDir(dir))
	assert.NoFileExists(t, filepath.Join(dir, "stale.txt"))
}
