// Package identity maps WeChat openids to local forum accounts.
//
// The mapping is the durable record linking one provider subject identifier
// to exactly one local user. The Resolver implements the provisioning
// algorithm: find an existing mapping, repair orphans, or create a fresh
// account with a handle derived deterministically from the openid so that
// re-provisioning the same visitor reproduces the same handle.
//
// The host platform's user database stays behind the Directory interface;
// this package never touches it directly.
package identity
