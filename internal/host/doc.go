// Package host drives the host application installed under site/: it writes
// the database configuration, builds the host frontend, runs the
// installer actions, installs third-party extensions and runs the
// maintenance scripts.
package host
