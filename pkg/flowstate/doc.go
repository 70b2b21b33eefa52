// Package flowstate persists the pending-state record that binds an
// authorization redirect to its callback.
//
// Each login attempt mints a random state token and saves a Record keyed by
// that token. The callback consumes the record exactly once: a second
// consume, an expired record, or an unknown token all fail identically with
// ErrNotFound, so forgery, expiry, and replay are indistinguishable to the
// caller.
//
// Two implementations are provided: Memory for single-process deployments
// and tests, and Redis for multi-node deployments where the callback may
// land on a different instance than the one that issued the redirect.
package flowstate
