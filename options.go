package wechatlogin

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lebanx/wechat-silent-login/pkg/auditlog"
	"github.com/lebanx/wechat-silent-login/pkg/cookie"
	"github.com/lebanx/wechat-silent-login/pkg/flowstate"
	"github.com/lebanx/wechat-silent-login/pkg/identity"
	"github.com/lebanx/wechat-silent-login/pkg/wechat"
)

// Option configures the Plugin.
type Option func(*Plugin)

// WithStateStore sets the pending-state store. Default: in-process.
// Multi-node deployments should use flowstate.NewRedis so the callback
// can land on any instance.
func WithStateStore(s flowstate.Store) Option {
	return func(p *Plugin) {
		p.states = s
	}
}

// WithMappingStore sets the openid mapping store. Default: in-process.
// Production deployments should use identity.NewPostgresStore.
func WithMappingStore(s identity.MappingStore) Option {
	return func(p *Plugin) {
		p.mappings = s
	}
}

// WithAuditLog sets the operator audit trail. Default: in-process,
// capped at Config.LogBufferSize entries.
func WithAuditLog(l auditlog.Log) Option {
	return func(p *Plugin) {
		p.audit = l
	}
}

// WithCookieManager replaces the cookie manager built from Config.
func WithCookieManager(m *cookie.Manager) Option {
	return func(p *Plugin) {
		p.cookies = m
	}
}

// WithLogger sets the structured logger. Default: discard.
func WithLogger(log *slog.Logger) Option {
	return func(p *Plugin) {
		if log != nil {
			p.log = log
		}
	}
}

// WithMetricsRegisterer registers the flow metrics on the given registerer.
// Default: an isolated registry, so metrics are recorded but not exposed
// until the host opts in with prometheus.DefaultRegisterer.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(p *Plugin) {
		p.metrics = NewMetrics(reg)
	}
}

// WithAdminAuthorizer guards the operator log endpoints with the host's
// staff check. Without one, the admin routes refuse every request.
func WithAdminAuthorizer(authorize AdminAuthorizer) Option {
	return func(p *Plugin) {
		p.admin = authorize
	}
}

// WithProviderOptions passes extra options to the WeChat client,
// typically WithHTTPClient and WithAPIBaseURL in tests.
func WithProviderOptions(opts ...wechat.Option) Option {
	return func(p *Plugin) {
		p.extraProviderOpts = append(p.extraProviderOpts, opts...)
	}
}
