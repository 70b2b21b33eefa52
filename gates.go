package wechatlogin

import (
	"net/http"
	"net/url"
	"strings"
)

// wechatUAToken identifies the WeChat in-app browser.
const wechatUAToken = "MicroMessenger"

func isWeChatBrowser(r *http.Request) bool {
	return strings.Contains(r.UserAgent(), wechatUAToken)
}

// acceptsHTML reports whether the request is a page load rather than an
// API or asset fetch. Redirecting XHR traffic through the provider would
// break the host's frontend, so anything not negotiating HTML is skipped.
func acceptsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

// Middleware intercepts eligible page loads and bounces them through the
// silent login flow. Requests that fail any gate pass through untouched,
// so the host serves them exactly as before.
func (p *Plugin) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.shouldAttempt(r) {
			target := p.cfg.MountPath + "/start?return_to=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// shouldAttempt runs the gate chain in order. Cheapest checks first;
// cookie parsing last.
func (p *Plugin) shouldAttempt(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if !acceptsHTML(r) {
		return false
	}
	if strings.HasPrefix(r.URL.Path, p.cfg.MountPath) {
		return false
	}
	if !p.cfg.Enabled || p.provider == nil {
		return false
	}
	if p.cfg.OnlyWeChatBrowser && !isWeChatBrowser(r) {
		return false
	}
	if p.sessions.IsAuthenticated(r) {
		return false
	}
	if p.hasChecked(r) {
		return false
	}
	return true
}
