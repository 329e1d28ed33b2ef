package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/velorajewels/velora/internal/pkg/database"
	"github.com/velorajewels/velora/internal/pkg/pricing"
)

type metalRateRequest struct {
	RatePerGram float64 `json:"rate_per_gram"`
}

// HandleUpdateMetalRate records a new gold rate for the vendor and reprices
// every weighted catalog item against it.
func HandleUpdateMetalRate(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	var req metalRateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid JSON body"})
	}

	svc := pricing.NewServiceFromDB(database.GetDB())
	updated, err := svc.UpdateMetalRate(c.Context(), vendorID, req.RatePerGram)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidRate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_rate", "message": "rate_per_gram must be a positive number"})
		}
		log.Printf("metal rate update failed for vendor %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not update metal rate"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"rate_per_gram": req.RatePerGram,
		"updated_items": updated,
	})
}

// HandleGetMetalRate returns the vendor's current gold rate.
func HandleGetMetalRate(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	svc := pricing.NewServiceFromDB(database.GetDB())
	rate, err := svc.CurrentMetalRate(c.Context(), vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "rate_not_found", "message": "No metal rate has been set yet"})
		}
		log.Printf("metal rate lookup failed for vendor %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load metal rate"})
	}

	return c.JSON(fiber.Map{
		"metal":         rate.Metal,
		"rate_per_gram": rate.RatePerGram,
		"effective_at":  rate.EffectiveAt,
	})
}
