package manifest

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validExtension = `{
    // comments are allowed
    "name": "Custom Module",
    "description": "Adds <custom> & things",
    "author": "Acme",
    "module": "CustomModule",
    "php": [">=8.1"],
    "acceptableVersions": ">=8.0.0",
    "bundled": true,
    "scripts": ["echo prepared > build/prepared.txt"],
    "strip": ["**/*.md"],
}`

func TestHyphenate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CustomModule", "custom-module"},
		{"Module", "module"},
		{"myCoolThing", "my-cool-thing"},
		{"HTMLParser", "htmlparser"},
		{"already-hyphenated", "already-hyphenated"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Hyphenate(tt.in))
		})
	}
}

func TestArchiveName(t *testing.T) {
	ext := &ExtensionParams{Module: "CustomModule"}
	assert.Equal(t, "custom-module-1.2.0.zip", ext.ArchiveName("1.2.0"))
	assert.Equal(t, "custom-module", ext.ModuleID())

	ext.PackageName = "AcmeSuite"
	assert.Equal(t, "acme-suite-1.2.0.zip", ext.ArchiveName("1.2.0"))
	assert.Equal(t, "custom-module", ext.ModuleID(), "module id ignores packageName")
}

func TestLoadExtension(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, ExtensionFile, validExtension)

	ext, err := LoadExtension(dir)
	require.NoError(t, err)

	assert.Equal(t, "Custom Module", ext.Name)
	assert.Equal(t, "CustomModule", ext.Module)
	assert.True(t, ext.Bundled)
	assert.Equal(t, []string{">=8.1"}, ext.PHP.Values)
	assert.Equal(t, []string{">=8.0.0"}, ext.AcceptableVersions.Values)
	assert.Equal(t, []string{"**/*.md"}, ext.Strip)
	assert.Len(t, ext.Scripts, 1)
}

func TestLoadExtensionSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
	}{
		{"missing module", `{"name": "X"}`, ""},
		{"lowercase module", `{"name": "X", "module": "customModule"}`, "/module"},
		{"bundled not bool", `{"name": "X", "module": "M", "bundled": "yes"}`, "/bundled"},
		{"php wrong type", `{"name": "X", "module": "M", "php": 8}`, "/php"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeJSON(t, dir, ExtensionFile, tt.content)

			_, err := LoadExtension(dir)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve.Issues)

			paths := make([]string, len(ve.Issues))
			for i, issue := range ve.Issues {
				paths[i] = issue.Path
			}
			assert.Contains(t, paths, tt.path)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	one := &ValidationError{File: "extension.json", Issues: []ValidationIssue{{Path: "/module", Message: "bad"}}}
	assert.Equal(t, "extension.json: 1 validation issue\n  /module: bad", one.Error())

	two := &ValidationError{File: "extension.json", Issues: []ValidationIssue{{Message: "a"}, {Path: "/x", Message: "b"}}}
	assert.Equal(t, "extension.json: 2 validation issues\n  /: a\n  /x: b", two.Error())
}

func TestLoadExtensionBadConstraint(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, ExtensionFile, `{"name": "X", "module": "M", "acceptableVersions": ["not a version"]}`)

	_, err := LoadExtension(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acceptableVersions")
}

func TestLoadExtensionMissing(t *testing.T) {
	_, err := LoadExtension(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadPackagePrefersTestPackage(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, PackageFile, `{"name": "custom-module", "version": "1.2.0"}`)

	pkg, err := LoadPackage(dir)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", pkg.Version)

	writeJSON(t, dir, TestPackageFile, `{"version": "1.3.0-beta.1"}`)
	pkg, err = LoadPackage(dir)
	require.NoError(t, err)
	assert.Equal(t, "1.3.0-beta.1", pkg.Version)
}

func TestLoadPackageInvalidVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing", `{"name": "x"}`},
		{"not semver", `{"version": "v1"}`},
		{"partial", `{"version": "1.2"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeJSON(t, dir, PackageFile, tt.content)
			_, err := LoadPackage(dir)
			require.Error(t, err)
		})
	}
}

func TestManifestMarshal(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, ExtensionFile, validExtension)
	ext, err := LoadExtension(dir)
	require.NoError(t, err)

	now := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)
	data, err := New(ext, &PackageParams{Version: "1.2.0"}, now).Marshal()
	require.NoError(t, err)

	want := `{
    "name": "Custom Module",
    "description": "Adds <custom> & things",
    "author": "Acme",
    "php": [
        ">=8.1"
    ],
    "acceptableVersions": ">=8.0.0",
    "version": "1.2.0",
    "skipBackup": true,
    "releaseDate": "2024-03-15"
}`
	assert.Equal(t, want, string(data))
}

func TestManifestOmitsMissingConstraints(t *testing.T) {
	ext := &ExtensionParams{Name: "X", Module: "X"}
	data, err := New(ext, &PackageParams{Version: "0.1.0"}, time.Now()).Marshal()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "php")
	assert.NotContains(t, raw, "acceptableVersions")
	assert.Equal(t, true, raw["skipBackup"])
}
