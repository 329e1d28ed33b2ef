package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/velorajewels/velora/internal/pkg/database"
	"github.com/velorajewels/velora/internal/pkg/events"
	"github.com/velorajewels/velora/internal/pkg/points"
	"github.com/velorajewels/velora/internal/pkg/vendorcontext"
)

// newPointsService wires the ledger service for a request. Swappable so
// handler tests can substitute a service backed by an in-memory repository.
var newPointsService = func() *points.Service {
	return points.NewServiceFromDB(database.GetDB()).WithEvents(events.NewRedisPublisher())
}

// requireVendorID resolves the authenticated vendor from Locals. When no
// vendor is present it writes the JSON 401 itself and returns ok=false; the
// handler must stop without writing anything further.
func requireVendorID(c *fiber.Ctx) (uint, bool) {
	vendorCtx := vendorcontext.GetVendorContext(c)
	if !vendorCtx.IsLoggedIn || vendorCtx.VendorID == 0 {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "authentication required",
		})
		return 0, false
	}
	return vendorCtx.VendorID, true
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
