package manifest

import (
	"regexp"
	"strings"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Hyphenate converts a camel-case name to its lowercase hyphenated form:
// "CustomModule" becomes "custom-module".
func Hyphenate(name string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(name, "$1-$2"))
}

// ModuleID returns the frontend module id.
func (e *ExtensionParams) ModuleID() string {
	return Hyphenate(e.Module)
}

// ArchiveName returns the distributable file name for version.
func (e *ExtensionParams) ArchiveName(version string) string {
	name := e.PackageName
	if name == "" {
		name = e.Module
	}
	return Hyphenate(name) + "-" + version + ".zip"
}
