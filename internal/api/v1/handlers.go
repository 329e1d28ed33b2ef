package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/velorajewels/velora/app/controllers"
)

// APIServer implements the v1 API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// PostAwardPoints credits the authenticated vendor for a rewardable action.
// Security is enforced via API key middleware attached in the router.
func (s *APIServer) PostAwardPoints(c *fiber.Ctx) error {
	return controllers.HandleAwardPoints(c)
}

// GetPointsBalance returns the vendor's current point total and tier.
func (s *APIServer) GetPointsBalance(c *fiber.Ctx) error {
	return controllers.HandleGetBalance(c)
}

// GetPointsHistory returns the vendor's ledger entries.
func (s *APIServer) GetPointsHistory(c *fiber.Ctx) error {
	return controllers.HandleGetHistory(c)
}

// GetRewards returns the active rewards catalog.
func (s *APIServer) GetRewards(c *fiber.Ctx) error {
	return controllers.HandleListRewards(c)
}

// PostRedeemReward exchanges points for a cataloged reward.
func (s *APIServer) PostRedeemReward(c *fiber.Ctx) error {
	return controllers.HandleRedeemReward(c)
}

// GetRedemptions returns the vendor's redemption records.
func (s *APIServer) GetRedemptions(c *fiber.Ctx) error {
	return controllers.HandleListRedemptions(c)
}

// GetRedemption returns one redemption by its public UUID.
func (s *APIServer) GetRedemption(c *fiber.Ctx) error {
	return controllers.HandleGetRedemption(c)
}

// PostMetalRate records a new gold rate and reprices the vendor catalog.
func (s *APIServer) PostMetalRate(c *fiber.Ctx) error {
	return controllers.HandleUpdateMetalRate(c)
}

// GetMetalRate returns the vendor's current gold rate.
func (s *APIServer) GetMetalRate(c *fiber.Ctx) error {
	return controllers.HandleGetMetalRate(c)
}

// GetVendorProfile returns account information for the authenticated vendor.
func (s *APIServer) GetVendorProfile(c *fiber.Ctx) error {
	return controllers.HandleGetVendorProfile(c)
}

// GetCatalogItems returns the vendor's catalog items.
func (s *APIServer) GetCatalogItems(c *fiber.Ctx) error {
	return controllers.HandleListCatalogItems(c)
}

// PostItemView records a public view of a shared catalog item.
func (s *APIServer) PostItemView(c *fiber.Ctx) error {
	return controllers.HandleTrackItemView(c)
}

// GetAdminVendors lists or searches vendor accounts.
func (s *APIServer) GetAdminVendors(c *fiber.Ctx) error {
	return controllers.HandleListVendors(c)
}

// PostAdminVendor registers a vendor and issues its first API key.
func (s *APIServer) PostAdminVendor(c *fiber.Ctx) error {
	return controllers.HandleCreateVendor(c)
}

// PostAdminVendorAPIKey rotates a vendor's API key.
func (s *APIServer) PostAdminVendorAPIKey(c *fiber.Ctx) error {
	return controllers.HandleIssueVendorAPIKey(c)
}

// DeleteAdminVendorAPIKey revokes a vendor's API key.
func (s *APIServer) DeleteAdminVendorAPIKey(c *fiber.Ctx) error {
	return controllers.HandleRevokeVendorAPIKey(c)
}

// DeleteAdminVendor soft-deletes a vendor account.
func (s *APIServer) DeleteAdminVendor(c *fiber.Ctx) error {
	return controllers.HandleDeleteVendor(c)
}

// GetAdminRewards returns the full rewards catalog including inactive entries.
func (s *APIServer) GetAdminRewards(c *fiber.Ctx) error {
	return controllers.HandleListAllRewards(c)
}

// PostAdminReward adds a rewards catalog entry.
func (s *APIServer) PostAdminReward(c *fiber.Ctx) error {
	return controllers.HandleCreateReward(c)
}

// PutAdminReward updates a rewards catalog entry.
func (s *APIServer) PutAdminReward(c *fiber.Ctx) error {
	return controllers.HandleUpdateReward(c)
}

// GetAdminPendingRedemptions lists redemptions awaiting manual fulfillment.
func (s *APIServer) GetAdminPendingRedemptions(c *fiber.Ctx) error {
	return controllers.HandleListPendingRedemptions(c)
}
