package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// UnknownIP is reported when no address can be determined for the caller.
const UnknownIP = "unknown"

// GetIP extracts the client IP from the request: the first X-Forwarded-For entry when
// present, otherwise the host part of the peer address. Headers are trusted as sent.
func GetIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	addr := c.Request.RemoteAddr
	if addr == "" {
		return UnknownIP
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
