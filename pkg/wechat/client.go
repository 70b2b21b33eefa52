package wechat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// ScopeBase is the silent scope: no consent screen, openid only.
	ScopeBase = "snsapi_base"

	defaultAuthBaseURL = "https://open.weixin.qq.com"
	defaultAPIBaseURL  = "https://api.weixin.qq.com"

	authorizePath   = "/connect/oauth2/authorize"
	accessTokenPath = "/sns/oauth2/access_token"

	defaultTimeout = 6 * time.Second
)

// Config holds WeChat Official Account credentials.
type Config struct {
	AppID     string `env:"WECHAT_APP_ID"`
	AppSecret string `env:"WECHAT_APP_SECRET"`
	Scope     string `env:"WECHAT_SCOPE" envDefault:"snsapi_base"`
}

// Client talks to the WeChat OAuth2 endpoints.
type Client struct {
	cfg        Config
	httpClient *http.Client
	authBase   string
	apiBase    string
	timeout    time.Duration
}

// New creates a WeChat OAuth2 client.
// Returns an error if AppID or AppSecret is empty.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.AppID == "" {
		return nil, ErrMissingAppID
	}
	if cfg.AppSecret == "" {
		return nil, ErrMissingAppSecret
	}
	if cfg.Scope == "" {
		cfg.Scope = ScopeBase
	}

	o := options{
		authBaseURL: defaultAuthBaseURL,
		apiBaseURL:  defaultAPIBaseURL,
		timeout:     defaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		authBase:   o.authBaseURL,
		apiBase:    o.apiBaseURL,
		timeout:    o.timeout,
	}, nil
}

// AuthorizeURL builds the browser redirect target for the authorization
// endpoint. WeChat requires the query parameters in their documented order
// and a literal #wechat_redirect fragment at the end.
func (c *Client) AuthorizeURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("appid", c.cfg.AppID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", c.cfg.Scope)
	q.Set("state", state)
	return c.authBase + authorizePath + "?" + q.Encode() + "#wechat_redirect"
}

// tokenResponse is the token endpoint body. On success it carries openid
// and access_token; on failure errcode and errmsg inside a 200 OK.
type tokenResponse struct {
	OpenID      string `json:"openid"`
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
}

// APIError carries the errcode and errmsg reported by the provider.
// It wraps ErrProviderError for errors.Is checks.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wechat: provider error errcode=%d errmsg=%s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrProviderError
}

// ExchangeCode trades an authorization code for the visitor's openid.
//
// The call is bounded by the configured timeout; a slow or unreachable
// provider surfaces as ErrExchangeFailed, never an indefinite wait. Any
// response without an openid is a failure.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", ErrMissingCode
	}

	q := url.Values{}
	q.Set("appid", c.cfg.AppID)
	q.Set("secret", c.cfg.AppSecret)
	q.Set("code", code)
	q.Set("grant_type", "authorization_code")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+accessTokenPath+"?"+q.Encode(), nil)
	if err != nil {
		return "", errors.Join(ErrExchangeFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Join(ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", errors.Join(ErrRequestFailed, fmt.Errorf("token request failed: status=%d body=%s", resp.StatusCode, body))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", errors.Join(ErrDecodeFailed, fmt.Errorf("decode token response: %w", err))
	}

	if tr.ErrCode != 0 {
		return "", &APIError{Code: tr.ErrCode, Message: tr.ErrMsg}
	}
	if tr.OpenID == "" {
		return "", ErrNoOpenID
	}

	return tr.OpenID, nil
}
