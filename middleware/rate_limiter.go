package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	config "github.com/tutorhive/booking_gateway/configs"
	"github.com/tutorhive/booking_gateway/utils"
)

// rateLimiterStore holds a map of client IPs to their rate limiters.
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
}

var limiterStore *rateLimiterStore
var limiterInit sync.Once

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(s.rps, s.burst)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimiter limits requests per client IP. The gateway sits in front of
// the marketplace backend, so this also shields the upstream from a single
// noisy browser.
func RateLimiter() fiber.Handler {
	limiterInit.Do(func() {
		limiterStore = &rateLimiterStore{
			limiters: make(map[string]*rate.Limiter),
			rps:      rate.Limit(config.ConfigInt("RATE_LIMIT_RPS", 20)),
			burst:    config.ConfigInt("RATE_LIMIT_BURST", 40),
		}
	})

	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if !limiterStore.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Try again later.",
			})
		}
		return c.Next()
	}
}
