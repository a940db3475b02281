package auth

import (
	"context"
	"sync"
)

// MemoryStore is an in-process IdentityStore used by tests and by the server
// when no database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*Identity
	byMail map[string]string
}

var _ IdentityStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]*Identity),
		byMail: make(map[string]string),
	}
}

func (m *MemoryStore) Create(ctx context.Context, identity *Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byMail[identity.Email]; exists {
		return ErrDuplicateEmail
	}
	cp := *identity
	m.byID[identity.ID] = &cp
	m.byMail[identity.Email] = identity.ID
	return nil
}

func (m *MemoryStore) Find(ctx context.Context, id string) (*Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	identity, ok := m.byID[id]
	if !ok || identity.DeletedAt != nil {
		return nil, ErrNotFound
	}
	cp := *identity
	return &cp, nil
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byMail[email]
	if !ok {
		return nil, ErrNotFound
	}
	identity := m.byID[id]
	if identity == nil || identity.DeletedAt != nil {
		return nil, ErrNotFound
	}
	cp := *identity
	return &cp, nil
}

func (m *MemoryStore) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.byID[id]
	if !ok || identity.DeletedAt != nil {
		return ErrNotFound
	}
	identity.Active = active
	return nil
}

// Count reports how many live accounts exist. Tests use it as a side-effect
// probe for denied requests.
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, identity := range m.byID {
		if identity.DeletedAt == nil {
			n++
		}
	}
	return n
}
