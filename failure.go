package wechatlogin

// FailureKind classifies why a login attempt aborted. Failures are logged
// at the flow boundary and recorded in the audit trail; they are never
// surfaced to the visitor, who just gets an anonymous page load.
type FailureKind string

const (
	// FailureConfig: feature disabled or credentials missing.
	FailureConfig FailureKind = "config"

	// FailureStateMismatch: state parameter absent, unknown, expired,
	// replayed, or not matching the browser's state cookie. All causes
	// are deliberately indistinguishable.
	FailureStateMismatch FailureKind = "state_mismatch"

	// FailureMissingCode: callback arrived without an authorization code.
	FailureMissingCode FailureKind = "missing_code"

	// FailureExchange: the provider call failed, timed out, or returned
	// a response without an openid.
	FailureExchange FailureKind = "exchange"

	// FailureProvisioning: account creation failed (collision retries
	// exhausted, store errors).
	FailureProvisioning FailureKind = "provisioning"

	// FailureLogin: the host's login primitive failed.
	FailureLogin FailureKind = "login"
)
