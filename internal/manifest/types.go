package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// File names inside the project directory.
const (
	ExtensionFile   = "extension.json"
	PackageFile     = "package.json"
	TestPackageFile = "test-package.json"
	ManifestFile    = "manifest.json"
)

// ExtensionParams is the content of extension.json.
type ExtensionParams struct {
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Author             string      `json:"author"`
	Module             string      `json:"module"`
	PackageName        string      `json:"packageName,omitempty"`
	PHP                Constraints `json:"php"`
	AcceptableVersions Constraints `json:"acceptableVersions"`
	Bundled            bool        `json:"bundled,omitempty"`
	// Scripts are auxiliary build scripts (shell syntax) run before staging.
	Scripts []string `json:"scripts,omitempty"`
	// Strip lists extra glob patterns removed from the staged tree.
	Strip []string `json:"strip,omitempty"`
}

// PackageParams is the subset of package.json the packager reads.
type PackageParams struct {
	Version string `json:"version"`
}

// Manifest is the manifest.json written at the archive root.
type Manifest struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Author             string       `json:"author"`
	PHP                *Constraints `json:"php,omitempty"`
	AcceptableVersions *Constraints `json:"acceptableVersions,omitempty"`
	Version            string       `json:"version"`
	SkipBackup         bool         `json:"skipBackup"`
	ReleaseDate        string       `json:"releaseDate"`
}

// Constraints is a list of version constraints. A single string is accepted
// on input and kept as a string on output.
type Constraints struct {
	Values []string
	single bool
}

// NewConstraints returns a list-form Constraints.
func NewConstraints(values ...string) Constraints {
	return Constraints{Values: values}
}

// IsZero reports whether no constraint is set.
func (c Constraints) IsZero() bool { return len(c.Values) == 0 }

func (c *Constraints) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Values = []string{s}
		c.single = true
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	c.Values = list
	c.single = false
	return nil
}

func (c Constraints) MarshalJSON() ([]byte, error) {
	var v any = c.Values
	switch {
	case c.single && len(c.Values) == 1:
		v = c.Values[0]
	case c.Values == nil:
		v = []string{}
	}

	// Constraints are full of '<' and '>'; keep them readable.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
