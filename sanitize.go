package wechatlogin

import (
	"net/url"
	"strings"
)

// sanitizeReturnTo reduces an untrusted destination to a safe local path.
//
// Anything unparseable, off-origin, protocol-relative, or pointing back
// into the plugin's own mount collapses to the forum root. The result is
// always a relative path plus query, never an absolute URL.
func (p *Plugin) sanitizeReturnTo(raw string) string {
	if raw == "" {
		return "/"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "/"
	}

	if u.Scheme != "" || u.Host != "" {
		if u.Scheme != "http" && u.Scheme != "https" {
			return "/"
		}
		if u.Host != p.baseHost {
			return "/"
		}
	}

	path := u.EscapedPath()
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "/"
	}
	if strings.HasPrefix(path, p.cfg.MountPath) {
		return "/"
	}

	if u.RawQuery != "" {
		return path + "?" + u.RawQuery
	}
	return path
}
