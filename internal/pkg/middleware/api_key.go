package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/velorajewels/velora/app/models"
	"github.com/velorajewels/velora/app/repository"
	"github.com/velorajewels/velora/internal/pkg/database"
	"github.com/velorajewels/velora/internal/pkg/vendorcontext"
)

// APIKeyAuthMiddleware authenticates requests carrying a vendor API key header.
func APIKeyAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := extractAPIKeyFromHeader(c)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API key"})
		}

		db := database.GetDB()
		if db == nil {
			log.Print("api key middleware: database unavailable")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Database unavailable"})
		}

		hash := models.HashAPIKey(apiKey)
		repo := repository.GetGlobalFactory().GetVendorRepository()
		vendor, err := repo.GetByAPIKeyHash(hash)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API key"})
			}
			log.Printf("api key lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "API key verification failed"})
		}

		if vendor.Status != models.STATUS_ACTIVE {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Vendor inactive"})
		}

		// Refresh last-used timestamp best-effort.
		vendor.TouchAPIKeyUsage()
		if err := db.Model(&models.Vendor{}).
			Where("id = ?", vendor.ID).
			Update("api_key_last_used_at", vendor.APIKeyLastUsedAt).Error; err != nil {
			log.Printf("failed to update api key usage timestamp for vendor %d: %v", vendor.ID, err)
		}

		vendorCtx := vendorcontext.VendorContext{
			VendorID:     vendor.ID,
			BusinessName: vendor.BusinessName,
			IsLoggedIn:   true,
			IsAdmin:      vendor.Role == models.ROLE_ADMIN,
		}
		c.Locals(vendorcontext.ContextKey, vendorCtx)
		c.Locals(vendorcontext.KeyFromProtected, true)
		c.Locals(vendorcontext.KeyIsAdmin, vendor.Role == models.ROLE_ADMIN)

		return c.Next()
	}
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
