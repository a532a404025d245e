package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ReleaseDateLayout formats Manifest.ReleaseDate.
const ReleaseDateLayout = "2006-01-02"

// New builds the archive manifest. The release date is taken from now in UTC.
func New(ext *ExtensionParams, pkg *PackageParams, now time.Time) *Manifest {
	m := &Manifest{
		Name:        ext.Name,
		Description: ext.Description,
		Author:      ext.Author,
		Version:     pkg.Version,
		SkipBackup:  true,
		ReleaseDate: now.UTC().Format(ReleaseDateLayout),
	}
	if !ext.PHP.IsZero() {
		php := ext.PHP
		m.PHP = &php
	}
	if !ext.AcceptableVersions.IsZero() {
		av := ext.AcceptableVersions
		m.AcceptableVersions = &av
	}
	return m
}

// Marshal renders the manifest as JSON indented by four spaces, without
// HTML escaping.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
