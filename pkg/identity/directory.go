package identity

import (
	"context"
	"errors"
)

// User is the slice of the host platform's account entity this package
// cares about.
type User struct {
	ID       string
	Username string
	Email    string
}

// NewUser describes an account to provision. Accounts are created active
// and approved: the provider already asserted the visitor's identity, so
// no verification gate applies.
type NewUser struct {
	Username string
	Email    string
	Password string
}

// ErrUserNotFound is returned by Directory lookups for missing users.
var ErrUserNotFound = errors.New("identity: user not found")

// Directory is the host platform's user database, consumed as a black box.
type Directory interface {
	// FindByID returns the user with the given ID.
	// Returns ErrUserNotFound if the user no longer exists.
	FindByID(ctx context.Context, id string) (User, error)

	// UsernameExists reports whether any user holds the handle,
	// compared case-insensitively.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether any user holds the address,
	// compared case-insensitively.
	EmailExists(ctx context.Context, email string) (bool, error)

	// Create provisions an active, approved account and returns it.
	Create(ctx context.Context, u NewUser) (User, error)
}
