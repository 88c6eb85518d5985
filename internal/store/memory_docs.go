package store

import (
	"encoding/json"
	"sync"
)

// MemoryDocumentStore keeps collections in-process. It backs tests and
// throwaway dev runs; nothing survives a restart.
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]json.RawMessage
}

// NewMemoryDocumentStore initializes an empty in-memory document store.
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string][]json.RawMessage)}
}

// LoadAll returns a copy of the collection stored under key.
func (s *MemoryDocumentStore) LoadAll(key string) ([]json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]json.RawMessage, len(docs))
	copy(out, docs)
	return out, true, nil
}

// SaveAll replaces the collection stored under key.
func (s *MemoryDocumentStore) SaveAll(key string, docs []json.RawMessage) error {
	stored := make([]json.RawMessage, len(docs))
	copy(stored, docs)
	s.mu.Lock()
	s.docs[key] = stored
	s.mu.Unlock()
	return nil
}
