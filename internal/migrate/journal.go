package migrate

import (
	"slices"
	"sync"
)

// MoveRecord is one relocation that has already succeeded.
type MoveRecord struct {
	From string
	To   string
}

// journal is the run-scoped undo log. Relocations append to it from several
// goroutines; compensation reads it once everything has settled.
type journal struct {
	mu      sync.Mutex
	records []MoveRecord
}

func (j *journal) record(r MoveRecord) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, r)
}

// undo returns the recorded moves newest first.
func (j *journal) undo() []MoveRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := slices.Clone(j.records)
	slices.Reverse(out)
	return out
}
