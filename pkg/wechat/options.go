package wechat

import (
	"net/http"
	"time"
)

// Option configures the Client.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	authBaseURL string
	apiBaseURL  string
	timeout     time.Duration
}

// WithHTTPClient sets a custom HTTP client for token endpoint requests.
// Useful for testing with httptest servers or injecting custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithAuthBaseURL overrides the authorization endpoint base URL.
// Default: https://open.weixin.qq.com
func WithAuthBaseURL(base string) Option {
	return func(o *options) {
		o.authBaseURL = base
	}
}

// WithAPIBaseURL overrides the token endpoint base URL.
// Default: https://api.weixin.qq.com
func WithAPIBaseURL(base string) Option {
	return func(o *options) {
		o.apiBaseURL = base
	}
}

// WithTimeout sets the ceiling for a single code exchange, covering dial,
// request, and response read. Default: 6 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}
