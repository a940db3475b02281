package audit

import (
	"context"
	"sync"
)

// MemoryLog is an in-process append-only store used by tests and by the
// server when no database is configured.
type MemoryLog struct {
	mu   sync.Mutex
	recs []Record
}

var _ Store = (*MemoryLog)(nil)

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (m *MemoryLog) Append(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, *rec)
	return nil
}

// Records returns a copy of everything appended so far.
func (m *MemoryLog) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.recs))
	copy(out, m.recs)
	return out
}
