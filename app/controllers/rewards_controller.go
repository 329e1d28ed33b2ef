package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/velorajewels/velora/app/repository"
	"github.com/velorajewels/velora/internal/pkg/points"
)

// HandleListRewards returns the active rewards catalog.
func HandleListRewards(c *fiber.Ctx) error {
	if _, ok := requireVendorID(c); !ok {
		return nil
	}

	svc := newPointsService()
	rewards, err := svc.Rewards(c.Context())
	if err != nil {
		log.Printf("reward catalog lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load rewards"})
	}
	return c.JSON(fiber.Map{"rewards": rewards})
}

type redeemRequest struct {
	RewardID uint `json:"reward_id"`
}

// HandleRedeemReward exchanges the vendor's points for a cataloged reward.
// Insufficient points and unknown rewards are distinct user-facing
// rejections, not server errors.
func HandleRedeemReward(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	var req redeemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid JSON body"})
	}
	if req.RewardID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "reward_id is required"})
	}

	svc := newPointsService()
	result, err := svc.Redeem(c.Context(), vendorID, req.RewardID)
	if err != nil {
		switch {
		case errors.Is(err, points.ErrRewardNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "reward_not_found", "message": "This reward does not exist or is no longer available"})
		case errors.Is(err, points.ErrBalanceNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "balance_not_found", "message": "No point balance exists for this account yet"})
		case errors.Is(err, points.ErrInsufficientPoints):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "insufficient_points", "message": "Not enough points for this reward"})
		}
		log.Printf("redemption failed for vendor %d reward %d: %v", vendorID, req.RewardID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not redeem reward"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"redemption":       result.Redemption,
		"remaining_points": result.RemainingPoints,
		"tier":             result.Tier,
	})
}

// HandleGetRedemption returns one redemption by its public UUID, scoped to
// the authenticated vendor.
func HandleGetRedemption(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	redemption, err := repository.GetGlobalFactory().GetRedemptionRepository().GetByUUID(c.Params("uuid"))
	if err != nil || redemption.VendorID != vendorID {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("redemption lookup failed for vendor %d: %v", vendorID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load redemption"})
		}
		// Foreign redemptions look like missing ones.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Redemption not found"})
	}
	return c.JSON(redemption)
}

// HandleListRedemptions returns the vendor's redemption records.
func HandleListRedemptions(c *fiber.Ctx) error {
	vendorID, ok := requireVendorID(c)
	if !ok {
		return nil
	}

	svc := newPointsService()
	redemptions, err := svc.Redemptions(c.Context(), vendorID)
	if err != nil {
		log.Printf("redemption list failed for vendor %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load redemptions"})
	}
	return c.JSON(fiber.Map{"redemptions": redemptions})
}
