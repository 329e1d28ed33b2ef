package controllers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/velorajewels/velora/app/models"
	"github.com/velorajewels/velora/app/repository"
	"github.com/velorajewels/velora/internal/pkg/metrics/counter"
)

// HandleListCatalogItems returns the authenticated vendor's catalog items.
func HandleListCatalogItems(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	items, err := repository.GetGlobalFactory().GetCatalogItemRepository().GetByVendorID(vendorID, offset, limit)
	if err != nil {
		log.Printf("catalog item list failed for vendor %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load catalog"})
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

// HandleTrackItemView records a customer view of a shared catalog item. The
// view count is buffered in Redis and flushed in batches; the owning vendor
// is credited one point for the view.
func HandleTrackItemView(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || itemID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid item id"})
	}

	item, err := repository.GetGlobalFactory().GetCatalogItemRepository().GetByID(uint(itemID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Item not found"})
		}
		log.Printf("item lookup failed for %d: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not track view"})
	}

	if err := counter.AddItemView(item.ID); err != nil {
		log.Printf("failed to buffer view counter for item %d: %v", item.ID, err)
	}

	svc := newPointsService()
	details := fmt.Sprintf(`{"item_id":%d}`, item.ID)
	if _, err := svc.Award(c.Context(), item.VendorID, models.ActionProductViewed, details); err != nil {
		log.Printf("view award failed for vendor %d item %d: %v", item.VendorID, item.ID, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
