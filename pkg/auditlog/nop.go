package auditlog

import "context"

// Nop is a Log that records nothing, used when the operator disables the
// audit trail.
type Nop struct{}

// NewNop creates a no-op audit trail.
func NewNop() Nop { return Nop{} }

// Push discards the event.
func (Nop) Push(context.Context, string) error { return nil }

// List always returns no entries.
func (Nop) List(context.Context, int, int) ([]Entry, error) { return nil, nil }

// Clear does nothing.
func (Nop) Clear(context.Context) error { return nil }

var _ Log = Nop{}
