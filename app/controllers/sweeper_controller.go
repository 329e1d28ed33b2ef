package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// HandleSweepExpiredPoints runs the cross-account point expiry sweep. The
// route is protected by the scheduler shared-secret middleware; there is no
// end-user identity on this path.
func HandleSweepExpiredPoints(c *fiber.Ctx) error {
	svc := newPointsService()
	result, err := svc.SweepExpired(c.Context())
	if err != nil {
		log.Printf("expiry sweep failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Sweep failed"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
