package session

import (
	"context"
	"sync"
	"time"

	"github.com/octabyte/emaar-web/models"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Sessions are lost on restart and
// not shared between replicas.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) models.Session {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return models.Session{}
	}

	now := m.now()
	if now.After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return models.Session{}
	}
	return decode(id, entry.data, now)
}

func (m *MemoryStore) Set(_ context.Context, id string, s models.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	now := m.now()

	m.mu.Lock()
	m.entries[id] = memoryEntry{data: data, expiresAt: now.Add(ttlFor(s, m.ttl, now))}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// putRaw stores bytes as-is. Tests use it to plant corrupt data.
func (m *MemoryStore) putRaw(id string, data []byte) {
	m.mu.Lock()
	m.entries[id] = memoryEntry{data: data, expiresAt: m.now().Add(time.Hour)}
	m.mu.Unlock()
}
