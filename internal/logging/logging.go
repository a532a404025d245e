// Package logging builds the structured logger shared by every stage.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/extkit/extbuild/internal/branding"
)

// Options configures New.
type Options struct {
	// Verbose enables debug level output.
	Verbose bool
	// Timestamps prefixes each line with the wall clock time.
	Timestamps bool
}

// New returns a logger that writes to w with the CLI name as prefix.
// A nil writer means os.Stderr.
func New(w io.Writer, opts Options) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          branding.CLIName(),
		Level:           level,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      "15:04:05",
	})
}

// Discard returns a logger that drops everything. Used by tests and by
// callers that pass no logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
