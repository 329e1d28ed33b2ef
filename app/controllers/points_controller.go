package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/velorajewels/velora/internal/pkg/points"
)

type awardRequest struct {
	ActionType    string `json:"action_type"`
	ActionDetails string `json:"action_details"`
}

// HandleAwardPoints credits the authenticated vendor for a rewardable action.
func HandleAwardPoints(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	var req awardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid JSON body"})
	}
	if req.ActionType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "action_type is required"})
	}

	svc := newPointsService()
	result, err := svc.Award(c.Context(), vendorID, req.ActionType, req.ActionDetails)
	if err != nil {
		if errors.Is(err, points.ErrInvalidAction) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_action", "message": "Unknown action type: " + req.ActionType})
		}
		log.Printf("point award failed for vendor %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not award points"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// HandleGetBalance returns the vendor's current point total and tier.
func HandleGetBalance(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	svc := newPointsService()
	balance, err := svc.Balance(c.Context(), vendorID)
	if err != nil {
		log.Printf("balance lookup failed for vendor %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load balance"})
	}

	resp := fiber.Map{
		"total_points": balance.TotalPoints,
		"tier":         balance.Tier,
	}
	if next, missing, ok := points.NextTier(balance.TotalPoints); ok {
		resp["next_tier"] = next
		resp["points_to_next_tier"] = missing
	}
	return c.JSON(resp)
}

// HandleGetHistory returns the vendor's ledger entries, newest first.
func HandleGetHistory(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}

	svc := newPointsService()
	entries, err := svc.History(c.Context(), vendorID, limit)
	if err != nil {
		log.Printf("history lookup failed for vendor %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load history"})
	}

	return c.JSON(fiber.Map{"entries": entries, "count": len(entries)})
}
