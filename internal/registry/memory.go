package registry

import (
	"context"
	"sort"
	"sync"

	"campuscore.org/internal/auth"
)

// MemoryStore is an in-process Store used by tests and by the server when no
// database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	byID     map[string]*Student
	byNumber map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:     make(map[string]*Student),
		byNumber: make(map[string]string),
	}
}

func (m *MemoryStore) Create(ctx context.Context, s *Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byNumber[s.StudentID]; exists {
		return ErrDuplicateStudentID
	}
	cp := *s
	m.byID[s.ID] = &cp
	m.byNumber[s.StudentID] = s.ID
	return nil
}

func (m *MemoryStore) Find(ctx context.Context, id string) (*Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byID[id]
	if !ok || s.DeletedAt != nil {
		return nil, auth.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) FindByStudentID(ctx context.Context, studentID string) (*Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byNumber[studentID]
	if !ok {
		return nil, auth.ErrNotFound
	}
	s := m.byID[id]
	if s == nil || s.DeletedAt != nil {
		return nil, auth.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Student, 0, len(m.byID))
	for _, s := range m.byID {
		if s.DeletedAt == nil {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}
