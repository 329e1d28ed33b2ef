package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/velorajewels/velora/app/models"
	"github.com/velorajewels/velora/app/repository"
	"github.com/velorajewels/velora/internal/pkg/database"
)

// HandleGetVendorProfile returns account information and quota usage for
// the authenticated vendor.
func HandleGetVendorProfile(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	repos := repository.GetGlobalFactory()
	vendor, err := repos.GetVendorRepository().GetByID(vendorID)
	if err != nil {
		log.Printf("vendor lookup failed for %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load profile"})
	}

	permissions, err := models.GetOrCreateVendorPermissions(database.GetDB(), vendorID)
	if err != nil {
		log.Printf("permissions lookup failed for %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load profile"})
	}

	itemCount, err := repos.GetCatalogItemRepository().CountByVendorID(vendorID)
	if err != nil {
		log.Printf("catalog count failed for %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load profile"})
	}

	return c.JSON(fiber.Map{
		"vendor": fiber.Map{
			"id":            vendor.ID,
			"business_name": vendor.BusinessName,
			"email":         vendor.Email,
			"status":        vendor.Status,
			"member_since":  vendor.CreatedAt,
			"last_login_at": formatTimePtr(vendor.LastLoginAt),
		},
		"quota": fiber.Map{
			"max_products":          permissions.MaxProducts,
			"max_share_links":       permissions.MaxShareLinks,
			"products_used":         itemCount,
			"premium_support":       permissions.HasPremiumSupport(),
			"premium_support_until": formatTimePtr(permissions.PremiumSupportUntil),
		},
	})
}
