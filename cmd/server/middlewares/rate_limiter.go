package middlewares

import (
	"strings"
	"time"

	"note-ledger/cmd/server/ctxkeys"
	"note-ledger/cmd/server/handlers/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// BuildRateLimiter returns a Fiber handler that does nothing when max <= 0.
// Buckets are keyed by the authenticated owner when the jwt middleware ran
// first, by client IP otherwise. Paths starting with any of skipPrefixes
// bypass the limiter.
func BuildRateLimiter(max int, expiration time.Duration, skipPrefixes ...string) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	cfg := limiter.Config{
		Max:          max,
		Expiration:   expiration,
		KeyGenerator: limiterKey,
		LimitReached: func(c *fiber.Ctx) error {
			return httperr.Fail(httperr.ErrTooManyRequests)
		},
	}

	if len(skipPrefixes) > 0 {
		cfg.Next = func(c *fiber.Ctx) bool {
			for _, p := range skipPrefixes {
				if strings.HasPrefix(c.Path(), p) {
					return true
				}
			}
			return false
		}
	}

	return limiter.New(cfg)
}

func limiterKey(c *fiber.Ctx) string {
	if owner, ok := c.Locals(ctxkeys.UserIDKey).(string); ok && owner != "" {
		return "owner:" + owner
	}
	return "ip:" + c.IP()
}
