package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/velorajewels/velora/internal/pkg/env"
)

// SchedulerAuthMiddleware authenticates the external scheduler invoking
// cross-account jobs (expiry sweep). There is no end-user identity here;
// the caller proves itself with a shared secret header.
func SchedulerAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := env.GetEnv("SCHEDULER_TOKEN", "")
		if secret == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "unavailable", "message": "Scheduler endpoint not configured"})
		}

		token := strings.TrimSpace(c.Get("X-Scheduler-Token"))
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid scheduler token"})
		}

		return c.Next()
	}
}
