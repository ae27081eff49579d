package utils

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP resolves the most likely real client address, preferring
// proxy headers over the socket peer.
func ClientIP(c *fiber.Ctx) string {
	if ip := c.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if ip := c.Get("X-Forwarded-For"); ip != "" {
		// Handle comma-separated IPs (take first one)
		if idx := strings.Index(ip, ","); idx != -1 {
			ip = strings.TrimSpace(ip[:idx])
		}
		if net.ParseIP(ip) != nil {
			return ip
		}
	}
	if ip := c.Get("X-Real-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			return ip
		}
	}
	return c.IP()
}
