package wechat

import "errors"

var (
	// ErrMissingAppID is returned when the WeChat app ID is not provided.
	ErrMissingAppID = errors.New("wechat: missing app ID")

	// ErrMissingAppSecret is returned when the WeChat app secret is not provided.
	ErrMissingAppSecret = errors.New("wechat: missing app secret")

	// ErrMissingCode is returned when ExchangeCode is called with an empty code.
	ErrMissingCode = errors.New("wechat: missing authorization code")

	// ErrExchangeFailed is returned when the HTTP request to the token
	// endpoint fails (transport error or timeout).
	ErrExchangeFailed = errors.New("wechat: code exchange request failed")

	// ErrRequestFailed is returned when the token endpoint returns a
	// non-OK HTTP status.
	ErrRequestFailed = errors.New("wechat: token endpoint returned non-OK status")

	// ErrDecodeFailed is returned when the token endpoint response is not
	// valid JSON.
	ErrDecodeFailed = errors.New("wechat: failed to decode token response")

	// ErrProviderError is returned when the token endpoint reports an
	// errcode in its response body. Use errors.As with *APIError to read
	// the code and message.
	ErrProviderError = errors.New("wechat: provider returned an error")

	// ErrNoOpenID is returned when the token endpoint response carries
	// neither an error nor an openid field.
	ErrNoOpenID = errors.New("wechat: response missing openid")
)
