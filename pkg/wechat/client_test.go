package wechat_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lebanx/wechat-silent-login/pkg/wechat"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		c, err := wechat.New(wechat.Config{AppID: "wx123", AppSecret: "secret"})
		require.NoError(t, err)
		require.NotNil(t, c)
	})

	t.Run("missing app ID", func(t *testing.T) {
		t.Parallel()
		c, err := wechat.New(wechat.Config{AppSecret: "secret"})
		require.ErrorIs(t, err, wechat.ErrMissingAppID)
		require.Nil(t, c)
	})

	t.Run("missing app secret", func(t *testing.T) {
		t.Parallel()
		c, err := wechat.New(wechat.Config{AppID: "wx123"})
		require.ErrorIs(t, err, wechat.ErrMissingAppSecret)
		require.Nil(t, c)
	})
}

func TestClient_AuthorizeURL(t *testing.T) {
	t.Parallel()

	c, err := wechat.New(wechat.Config{AppID: "wx123", AppSecret: "secret"})
	require.NoError(t, err)

	raw := c.AuthorizeURL("https://forum.example.com/wechat/callback?return_to=%2Ftopic%2F5", "deadbeef")

	t.Run("fragment is last", func(t *testing.T) {
		t.Parallel()
		require.True(t, strings.HasSuffix(raw, "#wechat_redirect"))
	})

	t.Run("query parameters", func(t *testing.T) {
		t.Parallel()
		u, err := url.Parse(strings.TrimSuffix(raw, "#wechat_redirect"))
		require.NoError(t, err)
		require.Equal(t, "open.weixin.qq.com", u.Host)
		require.Equal(t, "/connect/oauth2/authorize", u.Path)

		q := u.Query()
		require.Equal(t, "wx123", q.Get("appid"))
		require.Equal(t, "https://forum.example.com/wechat/callback?return_to=%2Ftopic%2F5", q.Get("redirect_uri"))
		require.Equal(t, "code", q.Get("response_type"))
		require.Equal(t, "snsapi_base", q.Get("scope"))
		require.Equal(t, "deadbeef", q.Get("state"))
	})

	t.Run("custom scope", func(t *testing.T) {
		t.Parallel()
		c, err := wechat.New(wechat.Config{AppID: "wx123", AppSecret: "secret", Scope: "snsapi_userinfo"})
		require.NoError(t, err)
		require.Contains(t, c.AuthorizeURL("https://forum.example.com/cb", "s"), "scope=snsapi_userinfo")
	})
}

func TestClient_ExchangeCode(t *testing.T) {
	t.Parallel()

	newClient := func(t *testing.T, handler http.HandlerFunc, opts ...wechat.Option) *wechat.Client {
		t.Helper()
		ts := httptest.NewServer(handler)
		t.Cleanup(ts.Close)

		opts = append([]wechat.Option{
			wechat.WithAPIBaseURL(ts.URL),
			wechat.WithHTTPClient(ts.Client()),
		}, opts...)

		c, err := wechat.New(wechat.Config{AppID: "wx123", AppSecret: "secret"}, opts...)
		require.NoError(t, err)
		return c
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/sns/oauth2/access_token", r.URL.Path)
			q := r.URL.Query()
			require.Equal(t, "wx123", q.Get("appid"))
			require.Equal(t, "secret", q.Get("secret"))
			require.Equal(t, "abc", q.Get("code"))
			require.Equal(t, "authorization_code", q.Get("grant_type"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"AT","openid":"OID1","scope":"snsapi_base"}`))
		})

		openid, err := c.ExchangeCode(context.Background(), "abc")
		require.NoError(t, err)
		require.Equal(t, "OID1", openid)
	})

	t.Run("empty code", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected for empty code")
		})

		_, err := c.ExchangeCode(context.Background(), "")
		require.ErrorIs(t, err, wechat.ErrMissingCode)
	})

	t.Run("errcode in 200 body", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"errcode":40029,"errmsg":"invalid code"}`))
		})

		_, err := c.ExchangeCode(context.Background(), "bad")
		require.ErrorIs(t, err, wechat.ErrProviderError)

		var apiErr *wechat.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 40029, apiErr.Code)
		require.Equal(t, "invalid code", apiErr.Message)
	})

	t.Run("missing openid", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"scope":"snsapi_base"}`))
		})

		_, err := c.ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, wechat.ErrNoOpenID)
	})

	t.Run("non-OK status", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway error", http.StatusBadGateway)
		})

		_, err := c.ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, wechat.ErrRequestFailed)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		_, err := c.ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, wechat.ErrDecodeFailed)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}, wechat.WithTimeout(50*time.Millisecond))

		start := time.Now()
		_, err := c.ExchangeCode(context.Background(), "abc")
		require.ErrorIs(t, err, wechat.ErrExchangeFailed)
		require.Less(t, time.Since(start), 2*time.Second)
	})
}
