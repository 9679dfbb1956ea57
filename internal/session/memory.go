package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/alexanderramin/cotador/internal/domain"
)

// MemoryStore keeps sessions for the life of the process. Values are
// stored encoded so callers never share state with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Save(_ context.Context, s *domain.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.RunID] = b
	return nil
}

func (m *MemoryStore) Load(_ context.Context, runID string) (*domain.Session, error) {
	m.mu.RLock()
	b, ok := m.data[runID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
