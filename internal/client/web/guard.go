package web

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/sxclient/internal/logging"
)

// allowedHost reports whether host (as sent in the Host header) names this
// dashboard: the configured listen address or a loopback name.
func allowedHost(host, listenAddr string) bool {
	if host == "" {
		return false
	}
	if strings.EqualFold(host, listenAddr) {
		return true
	}

	name := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		name = h
	}
	name = strings.Trim(name, "[]")

	if strings.EqualFold(name, "localhost") {
		return true
	}
	ip := net.ParseIP(name)
	return ip != nil && ip.IsLoopback()
}

// sameOrigin reports whether raw (an Origin or Referer value) points at host.
func sameOrigin(raw, host string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && strings.EqualFold(u.Host, host)
}

// requestGuard rejects requests addressed to a foreign host name (DNS
// rebinding) and state-changing requests sent from another origin. Requests
// without Origin and Referer (non-browser clients) pass.
func requestGuard(listenAddr string, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := c.Request
		if !allowedHost(r.Host, listenAddr) {
			log.Warn(r.Context(), "rejected request for foreign host", "host", r.Host, "path", r.URL.Path)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			origin := r.Header.Get("Origin")
			referer := r.Header.Get("Referer")
			switch {
			case origin != "":
				if !sameOrigin(origin, r.Host) {
					log.Warn(r.Context(), "rejected cross-origin request", "origin", origin, "path", r.URL.Path)
					c.AbortWithStatus(http.StatusForbidden)
					return
				}
			case referer != "":
				if !sameOrigin(referer, r.Host) {
					log.Warn(r.Context(), "rejected cross-origin request", "referer", referer, "path", r.URL.Path)
					c.AbortWithStatus(http.StatusForbidden)
					return
				}
			}
		}

		c.Next()
	}
}
