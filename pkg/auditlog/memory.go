package auditlog

import (
	"context"
	"sync"
)

// Memory is an in-process Log backed by a fixed-capacity slice,
// newest entries first.
type Memory struct {
	entries  []Entry
	capacity int
	mu       sync.Mutex
}

// NewMemory creates an in-process audit trail. A non-positive capacity
// falls back to DefaultCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{capacity: capacity}
}

// Push appends an event, evicting the oldest entry when at capacity.
func (m *Memory) Push(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append([]Entry{newEntry(msg)}, m.entries...)
	if len(m.entries) > m.capacity {
		m.entries = m.entries[:m.capacity]
	}

	return nil
}

// List returns up to limit entries starting at offset, newest first.
func (m *Memory) List(_ context.Context, limit, offset int) ([]Entry, error) {
	limit = clampLimit(limit)

	m.mu.Lock()
	defer m.mu.Unlock()

	if offset < 0 || offset >= len(m.entries) {
		return nil, nil
	}

	end := min(offset+limit, len(m.entries))

	out := make([]Entry, end-offset)
	copy(out, m.entries[offset:end])
	return out, nil
}

// Clear removes all entries.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	return nil
}

var _ Log = (*Memory)(nil)
