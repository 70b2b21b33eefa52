package wechatlogin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lebanx/wechat-silent-login/pkg/auditlog"
	"github.com/lebanx/wechat-silent-login/pkg/cookie"
	"github.com/lebanx/wechat-silent-login/pkg/flowstate"
	"github.com/lebanx/wechat-silent-login/pkg/identity"
	"github.com/lebanx/wechat-silent-login/pkg/logger"
	"github.com/lebanx/wechat-silent-login/pkg/wechat"
)

// Cookie names and marker lifetimes. The marker is short-lived after an
// abort so a transient provider problem retries within the half hour, and
// long-lived after success where re-checking buys nothing.
const (
	stateCookie   = "wx_state"
	checkedCookie = "wx_checked"

	markerAbortTTL   = 30 * 60      // 30 minutes, in seconds
	markerSuccessTTL = 12 * 60 * 60 // 12 hours, in seconds
)

// Plugin wires the authorization initiator and the callback resolver to
// the host platform.
type Plugin struct {
	cfg      Config
	provider *wechat.Client // nil when credentials are absent
	sessions SessionManager
	resolver *identity.Resolver
	mappings identity.MappingStore
	states   flowstate.Store
	audit    auditlog.Log
	cookies  *cookie.Manager
	metrics  *Metrics
	log      *slog.Logger
	admin    AdminAuthorizer
	baseHost string

	extraProviderOpts []wechat.Option
}

// New creates the plugin.
//
// sessions and users are the host platform's collaborators. By default the
// pending-state store, mapping store, and audit trail are in-process;
// multi-node deployments supply the Redis and Postgres implementations via
// options.
//
// Missing provider credentials are not an error: the plugin constructs
// normally and every gate fails until credentials appear, matching the
// fail-open contract of the flow itself.
func New(cfg Config, sessions SessionManager, users identity.Directory, opts ...Option) (*Plugin, error) {
	host, err := cfg.baseHost()
	if err != nil {
		return nil, err
	}

	p := &Plugin{
		cfg:      cfg,
		sessions: sessions,
		baseHost: host,
		log:      logger.NewNope(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if cfg.credentialsPresent() {
		providerOpts := p.providerOpts()
		p.provider, err = wechat.New(cfg.Provider, providerOpts...)
		if err != nil {
			return nil, err
		}
	}

	if p.states == nil {
		p.states = flowstate.NewMemory(flowstate.WithTTL(cfg.StateTTL))
	}

	if p.audit == nil {
		if cfg.LogEnabled {
			p.audit = auditlog.NewMemory(cfg.LogBufferSize)
		} else {
			p.audit = auditlog.NewNop()
		}
	}

	if p.cookies == nil {
		p.cookies = cookie.New(
			cookie.WithSecret(cfg.CookieSecret),
			cookie.WithDomain(cfg.CookieDomain),
			cookie.WithSecure(cfg.secureCookies()),
		)
	}

	if p.metrics == nil {
		p.metrics = NewMetrics(prometheus.NewRegistry())
	}

	if p.resolver == nil {
		mappings := p.mappings
		if mappings == nil {
			mappings = identity.NewMemoryStore()
		}
		p.resolver, err = identity.NewResolver(mappings, users, cfg.Resolver)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// providerOpts collects the wechat.Client options implied by the config
// and the plugin options.
func (p *Plugin) providerOpts() []wechat.Option {
	opts := []wechat.Option{wechat.WithTimeout(p.cfg.ExchangeTimeout)}
	opts = append(opts, p.extraProviderOpts...)
	return opts
}

// markChecked sets the loop-prevention marker. Signing falls back to a
// plain cookie when no secret is configured; the marker only suppresses
// redundant redirects, it grants nothing.
func (p *Plugin) markChecked(w http.ResponseWriter, maxAge int) {
	if err := p.cookies.SetSigned(w, checkedCookie, "1", maxAge); err != nil {
		p.cookies.Set(w, checkedCookie, "1", maxAge)
	}
}

// hasChecked reports whether a recent attempt already ran for this browser.
func (p *Plugin) hasChecked(r *http.Request) bool {
	v, err := p.cookies.GetSigned(r, checkedCookie)
	if errors.Is(err, cookie.ErrNoSecret) {
		v, err = p.cookies.Get(r, checkedCookie)
	}
	return err == nil && v == "1"
}
