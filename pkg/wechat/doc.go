// Package wechat implements the WeChat OAuth2 "silent" authorization flow
// used inside the WeChat in-app browser.
//
// WeChat's flow is a two-step code-for-openid exchange that deviates from
// RFC 6749 in several ways: the authorization endpoint takes `appid` instead
// of `client_id`, requires a literal `#wechat_redirect` fragment, and the
// token endpoint reports errors as `{errcode, errmsg}` inside a 200 OK JSON
// body. This package speaks that dialect directly.
//
// # Usage
//
//	client, err := wechat.New(wechat.Config{
//		AppID:     os.Getenv("WECHAT_APP_ID"),
//		AppSecret: os.Getenv("WECHAT_APP_SECRET"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Build the browser redirect target.
//	url := client.AuthorizeURL("https://forum.example.com/wechat/callback", state)
//
//	// Exchange the callback code for the visitor's openid.
//	openid, err := client.ExchangeCode(ctx, code)
//
// # Testing
//
// Use WithAPIBaseURL and WithHTTPClient to point the client at an httptest
// server:
//
//	client, _ := wechat.New(cfg, wechat.WithAPIBaseURL(ts.URL), wechat.WithHTTPClient(ts.Client()))
//
// # Error Handling
//
// Sentinel errors with the "wechat:" prefix cover each failure mode. An
// *APIError wraps ErrProviderError and carries the provider's errcode and
// errmsg for logging:
//
//	if errors.Is(err, wechat.ErrProviderError) {
//		// provider rejected the code
//	}
package wechat
