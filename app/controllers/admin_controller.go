package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/velorajewels/velora/app/models"
	"github.com/velorajewels/velora/app/repository"
)

// HandleListVendors returns vendor accounts, optionally filtered by a search
// query over business name and email.
func HandleListVendors(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetVendorRepository()

	if q := c.Query("q"); q != "" {
		vendors, err := repo.Search(q)
		if err != nil {
			log.Printf("vendor search failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not search vendors"})
		}
		return c.JSON(fiber.Map{"vendors": vendors, "count": len(vendors)})
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	vendors, err := repo.List(offset, limit)
	if err != nil {
		log.Printf("vendor list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not list vendors"})
	}
	total, err := repo.Count()
	if err != nil {
		log.Printf("vendor count failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not list vendors"})
	}

	return c.JSON(fiber.Map{"vendors": vendors, "count": len(vendors), "total": total})
}

type createVendorRequest struct {
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

// HandleCreateVendor registers a vendor account and issues its first API
// key. The raw key appears only in this response; the database stores the
// hash.
func HandleCreateVendor(c *fiber.Ctx) error {
	var req createVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid JSON body"})
	}

	repo := repository.GetGlobalFactory().GetVendorRepository()
	if _, err := repo.GetByEmail(req.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email_taken", "message": "A vendor with this email already exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("vendor email lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not create vendor"})
	}

	vendor, err := models.CreateVendor(req.BusinessName, req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	rawKey, err := vendor.IssueAPIKey()
	if err != nil {
		log.Printf("api key generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not create vendor"})
	}

	if err := repo.Create(vendor); err != nil {
		log.Printf("vendor create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not create vendor"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"vendor":  vendor,
		"api_key": rawKey,
	})
}

// HandleIssueVendorAPIKey rotates a vendor's API key. The previous key stops
// working immediately.
func HandleIssueVendorAPIKey(c *fiber.Ctx) error {
	vendorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || vendorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid vendor id"})
	}

	repo := repository.GetGlobalFactory().GetVendorRepository()
	vendor, err := repo.GetByID(uint(vendorID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Vendor not found"})
		}
		log.Printf("vendor lookup failed for %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not rotate API key"})
	}

	rawKey, err := vendor.IssueAPIKey()
	if err != nil {
		log.Printf("api key generation failed for vendor %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not rotate API key"})
	}
	if err := repo.Update(vendor); err != nil {
		log.Printf("vendor update failed for %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not rotate API key"})
	}

	return c.JSON(fiber.Map{
		"api_key":        rawKey,
		"api_key_prefix": vendor.APIKeyPrefix,
	})
}

// HandleRevokeVendorAPIKey disables a vendor's API key without deleting the
// account.
func HandleRevokeVendorAPIKey(c *fiber.Ctx) error {
	vendorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || vendorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid vendor id"})
	}

	repo := repository.GetGlobalFactory().GetVendorRepository()
	vendor, err := repo.GetByID(uint(vendorID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Vendor not found"})
		}
		log.Printf("vendor lookup failed for %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not revoke API key"})
	}

	vendor.RevokeAPIKey()
	if err := repo.Update(vendor); err != nil {
		log.Printf("vendor update failed for %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not revoke API key"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteVendor soft-deletes a vendor account.
func HandleDeleteVendor(c *fiber.Ctx) error {
	vendorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || vendorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid vendor id"})
	}

	if err := repository.GetGlobalFactory().GetVendorRepository().Delete(uint(vendorID)); err != nil {
		log.Printf("vendor delete failed for %d: %v", vendorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not delete vendor"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListAllRewards returns the full rewards catalog including inactive
// entries.
func HandleListAllRewards(c *fiber.Ctx) error {
	rewards, err := repository.GetGlobalFactory().GetRewardRepository().ListAll()
	if err != nil {
		log.Printf("reward list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not list rewards"})
	}
	return c.JSON(fiber.Map{"rewards": rewards})
}

type rewardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  uint   `json:"points_cost"`
	RewardType  string `json:"reward_type"`
	RewardValue string `json:"reward_value"`
	IsActive    *bool  `json:"is_active"`
}

// HandleCreateReward adds an entry to the rewards catalog.
func HandleCreateReward(c *fiber.Ctx) error {
	var req rewardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid JSON body"})
	}

	reward := &models.RewardCatalogEntry{
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		RewardType:  req.RewardType,
		RewardValue: req.RewardValue,
		IsActive:    true,
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}
	if err := reward.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if _, err := reward.DecodeRewardValue(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "reward_value must be valid JSON"})
	}

	if err := repository.GetGlobalFactory().GetRewardRepository().Create(reward); err != nil {
		log.Printf("reward create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not create reward"})
	}
	return c.Status(fiber.StatusCreated).JSON(reward)
}

// HandleUpdateReward updates a catalog entry; deactivation instead of
// deletion keeps past redemptions referentially intact.
func HandleUpdateReward(c *fiber.Ctx) error {
	rewardID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || rewardID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid reward id"})
	}

	repo := repository.GetGlobalFactory().GetRewardRepository()
	reward, err := repo.GetByID(uint(rewardID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Reward not found"})
		}
		log.Printf("reward lookup failed for %d: %v", rewardID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not update reward"})
	}

	var req rewardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid JSON body"})
	}
	if req.Name != "" {
		reward.Name = req.Name
	}
	if req.Description != "" {
		reward.Description = req.Description
	}
	if req.PointsCost > 0 {
		reward.PointsCost = req.PointsCost
	}
	if req.RewardType != "" {
		reward.RewardType = req.RewardType
	}
	if req.RewardValue != "" {
		reward.RewardValue = req.RewardValue
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}
	if err := reward.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if _, err := reward.DecodeRewardValue(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "reward_value must be valid JSON"})
	}

	if err := repo.Update(reward); err != nil {
		log.Printf("reward update failed for %d: %v", rewardID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not update reward"})
	}
	return c.JSON(reward)
}

// HandleListPendingRedemptions returns redemptions awaiting manual
// fulfillment, oldest first.
func HandleListPendingRedemptions(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	redemptions, err := repository.GetGlobalFactory().GetRedemptionRepository().ListPending(offset, limit)
	if err != nil {
		log.Printf("pending redemption list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not list redemptions"})
	}
	return c.JSON(fiber.Map{"redemptions": redemptions, "count": len(redemptions)})
}
