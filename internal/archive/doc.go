// Package archive writes and extracts zip archives. Written archives are
// reproducible: entries are stored in lexical order with a fixed timestamp,
// and the target name only appears once the archive is complete.
package archive
