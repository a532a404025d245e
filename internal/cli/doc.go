// Package cli defines the Cobra command tree for the extbuild CLI. Each file
// registers one command with the root command. The root command also accepts
// the trigger flags (--all, --copy, ...) so existing scripts keep working.
// Commands only parse flags and report results; the work is done by the
// pipeline and stages packages.
package cli
