package wechatlogin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router returns the plugin's HTTP surface, to be mounted at
// Config.MountPath:
//
//	GET    /start      initiate the authorization handshake
//	GET    /callback   provider redirect target
//	GET    /admin/logs operator audit trail, newest first
//	DELETE /admin/logs clear the audit trail
//
// The admin routes require an AdminAuthorizer; without one they refuse
// every request.
func (p *Plugin) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/start", p.handleStart)
	r.Get("/callback", p.handleCallback)

	r.Route("/admin", func(r chi.Router) {
		r.Use(p.requireAdmin)
		r.Get("/logs", p.handleListLogs)
		r.Delete("/logs", p.handleClearLogs)
	})

	return r
}

// requireAdmin guards the operator endpoints with the host's staff check.
func (p *Plugin) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.admin == nil || !p.admin(r) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
