package wechatlogin

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lebanx/wechat-silent-login/pkg/identity"
	"github.com/lebanx/wechat-silent-login/pkg/wechat"
)

// Config errors.
var (
	// ErrInvalidBaseURL is returned when the forum base URL is missing
	// or unparseable.
	ErrInvalidBaseURL = errors.New("wechatlogin: invalid base URL")
)

// Config is the plugin's recognized settings surface. Everything loads
// from WECHAT_* environment variables; a host that stores settings
// elsewhere can populate the struct directly.
type Config struct {
	// Provider holds the WeChat app credentials and scope. Missing
	// credentials do not fail construction: the feature simply behaves
	// as disabled.
	Provider wechat.Config

	// Resolver tunes account provisioning (email domain, credential
	// generation mode, derivation salt).
	Resolver identity.ResolverConfig

	// BaseURL is the forum's public origin, e.g. https://forum.example.com.
	// The provider redirects back to BaseURL + MountPath + "/callback",
	// which must live under the domain registered with WeChat.
	BaseURL string `env:"WECHAT_BASE_URL"`

	// MountPath is where the host mounts Router(). Default: /wechat.
	MountPath string `env:"WECHAT_MOUNT_PATH" envDefault:"/wechat"`

	// CookieSecret signs the state-binding and loop-prevention cookies.
	// Must be at least 32 bytes; when absent, cookies are plain and the
	// state check relies on the server-side record alone.
	CookieSecret string `env:"WECHAT_COOKIE_SECRET"`

	// CookieDomain widens plugin cookies beyond the request host.
	CookieDomain string `env:"WECHAT_COOKIE_DOMAIN"`

	// StateTTL bounds how long a pending login attempt stays valid.
	StateTTL time.Duration `env:"WECHAT_STATE_TTL" envDefault:"10m"`

	// ExchangeTimeout is the ceiling for the code-for-openid call.
	ExchangeTimeout time.Duration `env:"WECHAT_EXCHANGE_TIMEOUT" envDefault:"6s"`

	// LogBufferSize caps the audit trail entry count.
	LogBufferSize int `env:"WECHAT_LOG_BUFFER_SIZE" envDefault:"400"`

	// Enabled is the master feature flag. Disabled means every gate
	// fails and both endpoints redirect straight back.
	Enabled bool `env:"WECHAT_ENABLED" envDefault:"false"`

	// OnlyWeChatBrowser restricts the flow to the WeChat in-app browser
	// (User-Agent containing "MicroMessenger").
	OnlyWeChatBrowser bool `env:"WECHAT_ONLY_WECHAT_UA" envDefault:"true"`

	// LogEnabled toggles the operator audit trail.
	LogEnabled bool `env:"WECHAT_LOG_ENABLED" envDefault:"true"`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// baseHost extracts the host from BaseURL for same-origin checks.
func (c Config) baseHost() (string, error) {
	if c.BaseURL == "" {
		return "", ErrInvalidBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" {
		return "", ErrInvalidBaseURL
	}
	return u.Host, nil
}

// callbackURL is the registered redirect target for the provider.
func (c Config) callbackURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.MountPath + "/callback"
}

// secureCookies reports whether plugin cookies should carry the Secure
// flag, which follows the forum origin's scheme.
func (c Config) secureCookies() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}

// credentialsPresent reports whether the provider credentials are
// configured. Without them the feature behaves as disabled.
func (c Config) credentialsPresent() bool {
	return strings.TrimSpace(c.Provider.AppID) != "" && strings.TrimSpace(c.Provider.AppSecret) != ""
}
