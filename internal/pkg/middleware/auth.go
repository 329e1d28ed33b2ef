package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velorajewels/velora/internal/pkg/vendorcontext"
)

// RequireVendor ensures an authenticated vendor on API routes and returns JSON 401 otherwise.
func RequireVendor(c *fiber.Ctx) error {
	v := c.Locals(vendorcontext.KeyFromProtected)
	loggedIn := false
	if b, ok := v.(bool); ok {
		loggedIn = b
	}
	if !loggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "authentication required",
		})
	}
	return c.Next()
}

// RequireAdmin ensures the authenticated vendor has the admin role.
func RequireAdmin(c *fiber.Ctx) error {
	v := c.Locals(vendorcontext.KeyFromProtected)
	loggedIn := false
	if b, ok := v.(bool); ok {
		loggedIn = b
	}
	if !loggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "authentication required",
		})
	}
	if isAdmin, ok := c.Locals(vendorcontext.KeyIsAdmin).(bool); !ok || !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "admin access required",
		})
	}
	return c.Next()
}
