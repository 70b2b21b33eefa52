// Package wechatlogin silently logs WeChat in-app browser visitors into a
// forum, provisioning local accounts from the visitor's openid.
//
// The plugin implements WeChat's snsapi_base authorization flow: a visitor
// browsing inside WeChat is redirected to the provider with a one-time state
// token, comes back with an authorization code, the code is exchanged
// server-to-server for an openid, and the openid is resolved to a local
// account that is created on first visit. The visitor never sees a consent
// screen or an error page; every failure degrades to an anonymous page load.
//
// The host platform stays a black box behind two collaborator interfaces:
// SessionManager (is the request authenticated, log this user in) and
// identity.Directory (does this handle/address exist, create an account).
//
// # Mounting
//
//	plugin, err := wechatlogin.New(cfg, sessions, users,
//		wechatlogin.WithMappingStore(identity.NewPostgresStore(pool)),
//		wechatlogin.WithStateStore(flowstate.NewRedis(client)),
//		wechatlogin.WithAuditLog(auditlog.NewRedis(client)),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	router.Mount("/wechat", plugin.Router())
//	router.Use(plugin.Middleware) // optional: auto-start on page loads
//
// The middleware watches ordinary page requests and, when every gate check
// passes (feature enabled, WeChat user agent, not authenticated, no recent
// attempt), redirects to the start endpoint with the current URL as the
// return destination. Deployments that prefer explicit links can skip the
// middleware and point visitors at GET <mount>/start directly.
package wechatlogin
