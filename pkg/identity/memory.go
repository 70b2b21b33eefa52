package identity

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process MappingStore for single-node deployments
// and tests. Uniqueness on the openid is enforced under a single mutex.
type MemoryStore struct {
	mappings map[string]Mapping
	mu       sync.Mutex
}

// NewMemoryStore creates an in-process mapping store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mappings: make(map[string]Mapping)}
}

// Find returns the mapping for an openid.
func (s *MemoryStore) Find(_ context.Context, openid string) (Mapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.mappings[openid]
	if !ok {
		return Mapping{}, ErrMappingNotFound
	}
	return m, nil
}

// Create persists a new mapping, rejecting duplicates.
func (s *MemoryStore) Create(_ context.Context, m Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mappings[m.OpenID]; ok {
		return ErrMappingExists
	}

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	s.mappings[m.OpenID] = m

	return nil
}

// Delete removes the mapping for an openid.
func (s *MemoryStore) Delete(_ context.Context, openid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.mappings, openid)
	return nil
}

var _ MappingStore = (*MemoryStore)(nil)
