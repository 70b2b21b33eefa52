package flowstate

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store with TTL-based expiry.
//
// Expired records are dropped lazily on Consume and swept by a background
// janitor so abandoned attempts do not accumulate.
type Memory struct {
	records map[string]memoryEntry
	done    chan struct{}
	ttl     time.Duration
	mu      sync.Mutex
	closed  bool
}

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// MemoryOption configures the Memory store.
type MemoryOption func(*Memory)

// WithTTL sets the record lifetime. Default: DefaultTTL.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewMemory creates an in-process pending-state store.
//
// Example:
//
//	store := flowstate.NewMemory(flowstate.WithTTL(10 * time.Minute))
//	defer store.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		records: make(map[string]memoryEntry),
		done:    make(chan struct{}),
		ttl:     DefaultTTL,
	}
	for _, opt := range opts {
		opt(m)
	}

	go m.janitor()

	return m
}

// Save persists a record keyed by its token.
func (m *Memory) Save(_ context.Context, rec Record) error {
	if rec.Token == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[rec.Token] = memoryEntry{
		rec:       rec,
		expiresAt: time.Now().Add(m.ttl),
	}

	return nil
}

// Consume retrieves and deletes the record for the token.
func (m *Memory) Consume(_ context.Context, token string) (Record, error) {
	if token == "" {
		return Record{}, ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.records[token]
	if !ok {
		return Record{}, ErrNotFound
	}
	delete(m.records, token)

	if time.Now().After(e.expiresAt) {
		return Record{}, ErrNotFound
	}

	return e.rec, nil
}

// Close stops the background janitor. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)

	return nil
}

// janitor periodically removes expired records.
func (m *Memory) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for token, e := range m.records {
		if now.After(e.expiresAt) {
			delete(m.records, token)
		}
	}
}

var _ Store = (*Memory)(nil)
