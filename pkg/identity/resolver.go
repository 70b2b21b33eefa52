package identity

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// handlePrefix namespaces every provisioned account handle.
	handlePrefix = "wx_"

	// collisionRetries bounds the randomized fallback for handle and
	// address collisions.
	collisionRetries = 3

	// DefaultEmailDomain is the fixed suffix for generated addresses.
	DefaultEmailDomain = "lebanx.com"
)

// Credential generation modes.
const (
	// CredentialRandom issues a fresh random password on every
	// provisioning. Re-creating an account yields a different password.
	CredentialRandom = "random"

	// CredentialDerived derives the password from the openid and a
	// server-side salt. Re-creating an account reproduces the same
	// password without ever storing it, at the cost of weaker secrecy
	// if the salt leaks.
	CredentialDerived = "derived"
)

// Resolver errors.
var (
	// ErrHandleExhausted is returned when the deterministic handle and
	// every randomized fallback collide with existing accounts.
	ErrHandleExhausted = errors.New("identity: handle collision retries exhausted")

	// ErrEmailExhausted is returned when the derived address and every
	// randomized fallback collide with existing accounts.
	ErrEmailExhausted = errors.New("identity: email collision retries exhausted")

	// ErrMissingSalt is returned when derived credentials are requested
	// without a salt.
	ErrMissingSalt = errors.New("identity: derived credential mode requires a salt")
)

// ResolverConfig tunes account provisioning.
type ResolverConfig struct {
	// EmailDomain is the suffix for generated addresses.
	// Default: DefaultEmailDomain.
	EmailDomain string `env:"WECHAT_EMAIL_DOMAIN" envDefault:"lebanx.com"`

	// CredentialMode selects CredentialRandom or CredentialDerived.
	CredentialMode string `env:"WECHAT_PASSWORD_MODE" envDefault:"random"`

	// CredentialSalt is the server-side salt for CredentialDerived.
	CredentialSalt string `env:"WECHAT_PASSWORD_SALT"`
}

// Resolver maps openids to local users, provisioning accounts on demand.
type Resolver struct {
	mappings MappingStore
	users    Directory
	cfg      ResolverConfig
}

// Resolution is the outcome of a successful resolve.
type Resolution struct {
	User    User
	Created bool // true when a fresh account was provisioned
}

// NewResolver creates a Resolver.
// Returns ErrMissingSalt when derived credentials are configured without
// a salt.
func NewResolver(mappings MappingStore, users Directory, cfg ResolverConfig) (*Resolver, error) {
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = DefaultEmailDomain
	}
	if cfg.CredentialMode == "" {
		cfg.CredentialMode = CredentialRandom
	}
	if cfg.CredentialMode == CredentialDerived && cfg.CredentialSalt == "" {
		return nil, ErrMissingSalt
	}

	return &Resolver{
		mappings: mappings,
		users:    users,
		cfg:      cfg,
	}, nil
}

// DeriveHandle returns the deterministic handle for an openid: the fixed
// namespace prefix plus the first 8 hex characters of MD5(openid). The hash
// is an identifier derivation, not a security boundary; determinism is what
// keeps re-provisioning idempotent.
func DeriveHandle(openid string) string {
	sum := md5.Sum([]byte(openid))
	return handlePrefix + hex.EncodeToString(sum[:])[:8]
}

// Resolve maps an openid to exactly one local user, creating the account
// and mapping when necessary.
//
// An orphaned mapping (user deleted out-of-band) is dropped and
// re-provisioned. Losing a concurrent-creation race on the mapping's
// uniqueness constraint is not an error: the winner's mapping is re-read
// and its user returned.
func (r *Resolver) Resolve(ctx context.Context, openid string) (Resolution, error) {
	m, err := r.mappings.Find(ctx, openid)
	switch {
	case err == nil:
		u, err := r.users.FindByID(ctx, m.UserID)
		if err == nil {
			return Resolution{User: u}, nil
		}
		if !errors.Is(err, ErrUserNotFound) {
			return Resolution{}, err
		}
		// Orphan: the mapped user is gone. Drop the mapping and
		// provision from scratch.
		if err := r.mappings.Delete(ctx, openid); err != nil {
			return Resolution{}, err
		}
	case !errors.Is(err, ErrMappingNotFound):
		return Resolution{}, err
	}

	return r.provision(ctx, openid)
}

// provision creates a fresh account and mapping for an unmapped openid.
func (r *Resolver) provision(ctx context.Context, openid string) (Resolution, error) {
	username, err := r.pickUsername(ctx, openid)
	if err != nil {
		return Resolution{}, err
	}

	email, err := r.pickEmail(ctx, username)
	if err != nil {
		return Resolution{}, err
	}

	password, err := r.credential(openid)
	if err != nil {
		return Resolution{}, err
	}

	user, err := r.users.Create(ctx, NewUser{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return Resolution{}, err
	}

	err = r.mappings.Create(ctx, Mapping{
		OpenID:   openid,
		UserID:   user.ID,
		Username: user.Username,
	})
	if errors.Is(err, ErrMappingExists) {
		// Lost a race with a concurrent callback for the same openid.
		// The winner's mapping is authoritative.
		m, err := r.mappings.Find(ctx, openid)
		if err != nil {
			return Resolution{}, err
		}
		winner, err := r.users.FindByID(ctx, m.UserID)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{User: winner}, nil
	}
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{User: user, Created: true}, nil
}

// pickUsername returns the deterministic handle, falling back to randomized
// handles for a bounded number of attempts when it is already taken.
func (r *Resolver) pickUsername(ctx context.Context, openid string) (string, error) {
	candidate := DeriveHandle(openid)

	for attempt := 0; ; attempt++ {
		taken, err := r.users.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if attempt >= collisionRetries {
			return "", ErrHandleExhausted
		}

		suffix, err := randomHex(4)
		if err != nil {
			return "", err
		}
		candidate = handlePrefix + suffix
	}
}

// pickEmail derives the address from the handle, appending a short random
// suffix for a bounded number of attempts on collision.
func (r *Resolver) pickEmail(ctx context.Context, username string) (string, error) {
	candidate := username + "@" + r.cfg.EmailDomain

	for attempt := 0; ; attempt++ {
		taken, err := r.users.EmailExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if attempt >= collisionRetries {
			return "", ErrEmailExhausted
		}

		suffix, err := randomHex(2)
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s+%s@%s", username, suffix, r.cfg.EmailDomain)
	}
}

// credential generates the account password per the configured mode.
func (r *Resolver) credential(openid string) (string, error) {
	if r.cfg.CredentialMode == CredentialDerived {
		sum := sha256.Sum256([]byte(openid + r.cfg.CredentialSalt))
		return hex.EncodeToString(sum[:])[:32], nil
	}
	return randomHex(16)
}

// randomHex returns n random bytes, hex-encoded.
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("identity: generate randomness: %w", err)
	}
	return hex.EncodeToString(b), nil
}
