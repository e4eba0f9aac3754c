package cart

import (
    "context"
    "sync"

    "arbt-storefront-api/models"
)

// MemoryStore is an in-process Store used in tests and as a degraded-mode
// fallback when Redis is unavailable. It keeps the same serialized-JSON
// representation as RedisStore so corruption handling behaves identically.
type MemoryStore struct {
    mu   sync.Mutex
    data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
    return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) []models.LineItem {
    s.mu.Lock()
    raw, ok := s.data[key]
    s.mu.Unlock()
    if !ok {
        return []models.LineItem{}
    }

    items, valid := decodeItems(raw)
    if !valid {
        s.mu.Lock()
        s.data[key] = encodeItems(nil)
        s.mu.Unlock()
    }
    return items
}

func (s *MemoryStore) Save(_ context.Context, key string, items []models.LineItem) error {
    s.mu.Lock()
    s.data[key] = encodeItems(items)
    s.mu.Unlock()
    return nil
}

// SetRaw writes an arbitrary stored value, used by tests to simulate
// corrupted cart data.
func (s *MemoryStore) SetRaw(key string, raw []byte) {
    s.mu.Lock()
    s.data[key] = raw
    s.mu.Unlock()
}

// Raw returns the stored bytes for key.
func (s *MemoryStore) Raw(key string) []byte {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.data[key]
}
