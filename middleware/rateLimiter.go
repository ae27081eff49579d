package middleware

import (
	"sync"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles authentication attempts per client IP. This
// sits in front of the per-account lockout: the lockout protects one
// account, the limiter protects the endpoint.
type LoginRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewLoginRateLimiter(rps float64, burst int) *LoginRateLimiter {
	return &LoginRateLimiter{
		visitors: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *LoginRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.visitors[ip]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.visitors[ip] = limiter
	}
	return limiter
}

func (l *LoginRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := utils.ClientIP(c)
		if !l.limiterFor(ip).Allow() {
			config.Logger.Warn("Login rate limit exceeded", zap.String("ip", ip))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many attempts",
				"error":   "Please wait a moment before trying again",
			})
		}
		return c.Next()
	}
}
