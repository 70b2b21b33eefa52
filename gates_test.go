package wechatlogin_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	wechatlogin "github.com/lebanx/wechat-silent-login"
)

func TestPlugin_Middleware(t *testing.T) {
	t.Parallel()

	serve := func(h *harness, r *http.Request) (*httptest.ResponseRecorder, *bool) {
		passed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			passed = true
			w.WriteHeader(http.StatusOK)
		})
		rec := httptest.NewRecorder()
		h.plugin.Middleware(next).ServeHTTP(rec, r)
		return rec, &passed
	}

	t.Run("eligible page load is redirected into the flow", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, "", nil)

		rec, passed := serve(h, wxGet("/topic/5?page=2"))
		require.False(t, *passed)
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/wechat/start?return_to=%2Ftopic%2F5%3Fpage%3D2", rec.Header().Get("Location"))
	})

	t.Run("non-GET passes through", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, "", nil)

		r := httptest.NewRequest(http.MethodPost, "/topic/5", nil)
		r.Header.Set("User-Agent", wechatUA)
		r.Header.Set("Accept", "text/html")
		_, passed := serve(h, r)
		require.True(t, *passed)
	})

	t.Run("api request passes through", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, "", nil)

		r := wxGet("/session/current.json")
		r.Header.Set("Accept", "application/json")
		_, passed := serve(h, r)
		require.True(t, *passed)
	})

	t.Run("plugin paths pass through", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, "", nil)

		_, passed := serve(h, wxGet("/wechat/callback?state=x"))
		require.True(t, *passed)
	})

	t.Run("desktop browser passes through", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, "", nil)

		r := wxGet("/topic/5")
		r.Header.Set("User-Agent", desktopUA)
		_, passed := serve(h, r)
		require.True(t, *passed)
	})

	t.Run("authenticated session passes through", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, "", nil)
		h.sessions.authenticated = true

		_, passed := serve(h, wxGet("/topic/5"))
		require.True(t, *passed)
	})

	t.Run("disabled feature passes through", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, "", func(cfg *wechatlogin.Config) { cfg.Enabled = false })

		_, passed := serve(h, wxGet("/topic/5"))
		require.True(t, *passed)
	})

	t.Run("missing credentials pass through", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, "", func(cfg *wechatlogin.Config) {
			cfg.Provider.AppID = ""
			cfg.Provider.AppSecret = ""
		})

		_, passed := serve(h, wxGet("/topic/5"))
		require.True(t, *passed)
	})

	t.Run("recently checked browser passes through", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, "", nil)

		// An aborted callback stamps the marker; reuse its cookie.
		aborted := h.callback("", "", nil)
		marker := findCookie(aborted.Result().Cookies(), "wx_checked")
		require.NotNil(t, marker)

		r := wxGet("/topic/5")
		r.AddCookie(marker)
		_, passed := serve(h, r)
		require.True(t, *passed)
	})
}
