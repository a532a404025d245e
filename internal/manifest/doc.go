// Package manifest reads the extension metadata (extension.json), the
// package metadata (package.json, or test-package.json when present) and
// produces the manifest.json shipped inside the extension archive.
// extension.json is validated against an embedded JSON schema; versions and
// version constraints are checked as semver.
package manifest
