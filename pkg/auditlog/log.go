package auditlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries retained when no capacity is
// configured.
const DefaultCapacity = 400

// Entry is one recorded event, newest first in List results.
type Entry struct {
	At  time.Time `json:"ts"`
	ID  string    `json:"id"`
	Msg string    `json:"msg"`
}

// newEntry stamps a message with an ID and the current time.
func newEntry(msg string) Entry {
	return Entry{
		ID:  uuid.NewString(),
		At:  time.Now().UTC(),
		Msg: msg,
	}
}

// Log is the operator-facing audit trail.
//
// Push must never fail the calling flow: implementations report storage
// problems through their error return, and callers log and continue.
type Log interface {
	// Push appends an event, evicting the oldest entry when at capacity.
	Push(ctx context.Context, msg string) error

	// List returns up to limit entries starting at offset, newest first.
	List(ctx context.Context, limit, offset int) ([]Entry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// clampLimit bounds a caller-supplied page size.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 1
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}
