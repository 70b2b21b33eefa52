package wechatlogin

import "net/http"

// SessionManager is the host platform's authentication primitive,
// consumed as a black box.
type SessionManager interface {
	// IsAuthenticated reports whether the request already carries a
	// logged-in session.
	IsAuthenticated(r *http.Request) bool

	// LogIn establishes a session for the user on this response.
	LogIn(w http.ResponseWriter, r *http.Request, userID string) error
}

// AdminAuthorizer decides whether a request may access the operator log
// endpoints. The host supplies one wired to its own staff check; without
// one, the admin routes refuse every request.
type AdminAuthorizer func(r *http.Request) bool
