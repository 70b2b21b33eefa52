package identity

import (
	"context"
	"errors"
	"time"
)

// Mapping links a WeChat openid to a local user. Mappings are created once
// and never updated: an orphaned mapping is deleted and recreated.
type Mapping struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	OpenID    string
	UserID    string
	Username  string
}

// Mapping store errors.
var (
	// ErrMappingNotFound is returned when no mapping exists for an openid.
	ErrMappingNotFound = errors.New("identity: mapping not found")

	// ErrMappingExists is returned when a mapping for the openid already
	// exists. Callers treat this as losing a provisioning race and re-read
	// the winner's mapping.
	ErrMappingExists = errors.New("identity: mapping already exists")
)

// MappingStore persists openid-to-user mappings. Implementations must
// enforce uniqueness on the openid so concurrent provisioning of the same
// subject cannot produce two mappings.
type MappingStore interface {
	// Find returns the mapping for an openid.
	// Returns ErrMappingNotFound if none exists.
	Find(ctx context.Context, openid string) (Mapping, error)

	// Create persists a new mapping.
	// Returns ErrMappingExists if the openid is already mapped.
	Create(ctx context.Context, m Mapping) error

	// Delete removes the mapping for an openid. Deleting a missing
	// mapping is not an error.
	Delete(ctx context.Context, openid string) error
}
