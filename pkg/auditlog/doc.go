// Package auditlog records a size-bounded trail of login-flow events for
// operator diagnosis.
//
// The flow itself never surfaces errors to end users; every abort, exchange
// failure, and provisioning problem lands here instead. The trail is a
// fixed-capacity ring: once full, the oldest entries are discarded, so the
// log can stay enabled indefinitely without growing unbounded.
//
// The Redis implementation keeps entries in a capped list (LPUSH + LTRIM)
// shared across nodes; Memory keeps them in-process for single-node
// deployments and tests.
package auditlog
