package wechatlogin

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lebanx/wechat-silent-login/pkg/auditlog"
	"github.com/lebanx/wechat-silent-login/pkg/cookie"
	"github.com/lebanx/wechat-silent-login/pkg/flowstate"
)

// handleStart initiates the authorization handshake: it mints a
// single-use state token, persists the pending attempt with its
// destination server-side, binds the token to the browser via the state
// cookie, and redirects to the provider's authorize endpoint.
//
// Every precondition failure redirects back to the sanitized destination.
// The visitor never sees an error page out of this flow.
func (p *Plugin) handleStart(w http.ResponseWriter, r *http.Request) {
	dest := p.sanitizeReturnTo(r.URL.Query().Get("return_to"))

	if !p.cfg.Enabled || p.provider == nil {
		p.abort(w, r, dest, FailureConfig, "start requested while disabled or unconfigured")
		return
	}

	if p.cfg.OnlyWeChatBrowser && !isWeChatBrowser(r) {
		p.markChecked(w, markerAbortTTL)
		http.Redirect(w, r, dest, http.StatusFound)
		return
	}

	if p.sessions.IsAuthenticated(r) {
		p.markChecked(w, markerSuccessTTL)
		http.Redirect(w, r, dest, http.StatusFound)
		return
	}

	token, err := flowstate.NewToken()
	if err != nil {
		p.abort(w, r, dest, FailureConfig, "state token generation failed")
		return
	}

	rec := flowstate.Record{
		CreatedAt: time.Now().UTC(),
		Token:     token,
		ReturnTo:  dest,
	}
	if err := p.states.Save(r.Context(), rec); err != nil {
		p.log.ErrorContext(r.Context(), "persist pending state", "error", err)
		p.abort(w, r, dest, FailureConfig, "pending state store unavailable")
		return
	}

	maxAge := int(p.cfg.StateTTL.Seconds())
	if err := p.cookies.SetSigned(w, stateCookie, token, maxAge); err != nil {
		p.cookies.Set(w, stateCookie, token, maxAge)
	}

	http.Redirect(w, r, p.provider.AuthorizeURL(p.cfg.callbackURL(), token), http.StatusFound)
}

// handleCallback is the provider's redirect target. It verifies the state
// against both the browser cookie and the server-side record, exchanges
// the authorization code for an openid, resolves the openid to a local
// user, and logs that user in.
//
// Each check aborts to an anonymous page load on failure. Unknown,
// expired, replayed, and cookie-mismatched states are deliberately
// indistinguishable from outside.
func (p *Plugin) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !p.cfg.Enabled || p.provider == nil {
		p.abort(w, r, "/", FailureConfig, "callback while disabled or unconfigured")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		p.abort(w, r, "/", FailureStateMismatch, "callback without state")
		return
	}

	// Browser binding. When signing is available the state cookie must
	// carry exactly the token being presented; without a secret the
	// server-side record is the only binding.
	bound, err := p.cookies.GetSigned(r, stateCookie)
	switch {
	case err == nil:
		if subtle.ConstantTimeCompare([]byte(bound), []byte(state)) != 1 {
			p.abort(w, r, "/", FailureStateMismatch, "state does not match browser binding")
			return
		}
	case errors.Is(err, cookie.ErrNoSecret):
		// No binding configured.
	default:
		p.abort(w, r, "/", FailureStateMismatch, "state binding cookie missing or tampered")
		return
	}
	p.cookies.Delete(w, stateCookie)

	rec, err := p.states.Consume(ctx, state)
	if err != nil {
		p.abort(w, r, "/", FailureStateMismatch, "state unknown, expired, or already used")
		return
	}
	dest := p.sanitizeReturnTo(rec.ReturnTo)

	code := r.URL.Query().Get("code")
	if code == "" {
		p.abort(w, r, dest, FailureMissingCode, "callback without authorization code")
		return
	}

	// A session may have been established by a parallel tab between
	// start and callback. Nothing left to do.
	if p.sessions.IsAuthenticated(r) {
		p.markChecked(w, markerSuccessTTL)
		http.Redirect(w, r, dest, http.StatusFound)
		return
	}

	started := time.Now()
	openid, err := p.provider.ExchangeCode(ctx, code)
	p.metrics.observeExchange(started)
	if err != nil {
		p.log.WarnContext(ctx, "code exchange failed", "error", err)
		p.abort(w, r, dest, FailureExchange, fmt.Sprintf("code exchange failed: %v", err))
		return
	}

	res, err := p.resolver.Resolve(ctx, openid)
	if err != nil {
		p.log.ErrorContext(ctx, "resolve openid", "error", err)
		p.abort(w, r, dest, FailureProvisioning, fmt.Sprintf("provisioning failed: %v", err))
		return
	}
	if res.Created {
		p.metrics.userProvisioned()
		p.record(ctx, "provisioned account "+res.User.Username)
	}

	if err := p.sessions.LogIn(w, r, res.User.ID); err != nil {
		p.log.ErrorContext(ctx, "establish session", "error", err, "user_id", res.User.ID)
		p.abort(w, r, dest, FailureLogin, "session establishment failed")
		return
	}

	p.metrics.attemptSucceeded()
	p.record(ctx, "logged in "+res.User.Username)
	p.log.InfoContext(ctx, "wechat login succeeded", "username", res.User.Username, "created", res.Created)

	p.markChecked(w, markerSuccessTTL)
	http.Redirect(w, r, dest, http.StatusFound)
}

// abort ends an attempt without surfacing anything to the visitor: record
// the failure for operators, set the short-lived marker so the next half
// hour of page loads is not spent retrying, and land on the destination
// as an anonymous page load.
func (p *Plugin) abort(w http.ResponseWriter, r *http.Request, dest string, kind FailureKind, msg string) {
	p.metrics.attemptAborted(kind)
	p.record(r.Context(), msg)
	p.log.InfoContext(r.Context(), "wechat login aborted", "kind", string(kind))
	p.markChecked(w, markerAbortTTL)
	http.Redirect(w, r, dest, http.StatusFound)
}

// record appends to the audit trail. A failing trail is logged and
// otherwise ignored; it never breaks the flow it observes.
func (p *Plugin) record(ctx context.Context, msg string) {
	if err := p.audit.Push(ctx, msg); err != nil {
		p.log.ErrorContext(ctx, "audit push failed", "error", err)
	}
}

// handleListLogs serves the audit trail as JSON, newest first.
// Pagination via limit (default 100) and offset query parameters.
func (p *Plugin) handleListLogs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	entries, err := p.audit.List(r.Context(), limit, offset)
	if err != nil {
		p.log.ErrorContext(r.Context(), "list audit entries", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []auditlog.Entry{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		p.log.ErrorContext(r.Context(), "encode audit entries", "error", err)
	}
}

// handleClearLogs empties the audit trail.
func (p *Plugin) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := p.audit.Clear(r.Context()); err != nil {
		p.log.ErrorContext(r.Context(), "clear audit entries", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses a non-negative integer query parameter, falling back to
// a default on anything else.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
