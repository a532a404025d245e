package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/extkit/extbuild/internal/fsutil"
	"github.com/extkit/extbuild/internal/logging"
	"github.com/sourcegraph/conc/iter"
)

// MoveFunc relocates a single filesystem entry.
type MoveFunc func(from, to string) error

// Migrator moves directory contents. The zero value is not usable; call New.
type Migrator struct {
	move   MoveFunc
	logger *log.Logger
}

// Option configures a Migrator.
type Option func(*Migrator)

// WithMoveFunc replaces the relocation primitive (fsutil.Move by default).
func WithMoveFunc(f MoveFunc) Option {
	return func(m *Migrator) {
		m.move = f
	}
}

// WithLogger sets the logger used to report compensation problems.
func WithLogger(l *log.Logger) Option {
	return func(m *Migrator) {
		m.logger = l
	}
}

// New creates a Migrator.
func New(opts ...Option) *Migrator {
	m := &Migrator{
		move:   fsutil.Move,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MoveContents relocates every direct child of src into dst and then removes
// src. dst is created if absent.
//
// On partial failure all successful relocations are moved back and the first
// failure by listing order is returned; src is kept. Compensation failures
// are logged but never replace that error.
func (m *Migrator) MoveContents(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if len(entries) > 0 {
		if err := m.relocate(src, dst, entries); err != nil {
			return err
		}
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("removing %s: %w", src, err)
	}
	return nil
}

func (m *Migrator) relocate(src, dst string, entries []os.DirEntry) error {
	var j journal

	mapper := iter.Mapper[os.DirEntry, error]{MaxGoroutines: len(entries)}
	results := mapper.Map(entries, func(entry *os.DirEntry) error {
		name := (*entry).Name()
		from := filepath.Join(src, name)
		to := filepath.Join(dst, name)
		if err := m.move(from, to); err != nil {
			return err
		}
		j.record(MoveRecord{From: from, To: to})
		return nil
	})

	var first error
	for _, err := range results {
		if err != nil {
			first = err
			break
		}
	}
	if first == nil {
		return nil
	}

	m.compensate(j.undo())
	return fmt.Errorf("moving contents of %s into %s: %w", src, dst, first)
}

func (m *Migrator) compensate(records []MoveRecord) {
	if len(records) == 0 {
		return
	}

	m.logger.Warn("relocation failed, restoring moved entries", "count", len(records))

	iter.Iterator[MoveRecord]{MaxGoroutines: len(records)}.ForEach(records, func(r *MoveRecord) {
		if err := m.move(r.To, r.From); err != nil {
			m.logger.Error("restoring entry", "from", r.To, "to", r.From, "err", err)
		}
	})
}

// MoveContents relocates the contents of src into dst with a default Migrator.
func MoveContents(ctx context.Context, src, dst string) error {
	return New().MoveContents(ctx, src, dst)
}
