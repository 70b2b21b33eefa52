package flowstate

import (
	"context"
	"errors"
)

// Store errors.
var (
	// ErrNotFound is returned when no pending record matches the token.
	// Expired and already-consumed records report the same error.
	ErrNotFound = errors.New("flowstate: pending record not found")

	// ErrEmptyToken is returned when a record has no token.
	ErrEmptyToken = errors.New("flowstate: empty token")
)

// Store persists pending-state records.
type Store interface {
	// Save persists a record keyed by its token, replacing any previous
	// record with the same token.
	Save(ctx context.Context, rec Record) error

	// Consume atomically retrieves and deletes the record for the token.
	// Returns ErrNotFound if the record is missing, expired, or was
	// already consumed.
	Consume(ctx context.Context, token string) (Record, error)
}
