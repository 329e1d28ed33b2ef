package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velorajewels/velora/internal/pkg/middleware"
)

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// RegisterHandlers attaches all v1 routes to the given router group.
// Vendor routes sit behind API key authentication; the item view tracker is
// public (customers browsing a shared catalog are anonymous); admin routes
// additionally require the admin role.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	router.Post("/catalog/items/:id/view", s.PostItemView)

	auth := middleware.APIKeyAuthMiddleware()

	// Admin group first: the vendor group below uses an empty prefix, and
	// its middleware would otherwise also run on /admin paths.
	admin := router.Group("/admin", auth, middleware.RequireAdmin)

	admin.Get("/vendors", s.GetAdminVendors)
	admin.Post("/vendors", s.PostAdminVendor)
	admin.Post("/vendors/:id/api-key", s.PostAdminVendorAPIKey)
	admin.Delete("/vendors/:id/api-key", s.DeleteAdminVendorAPIKey)
	admin.Delete("/vendors/:id", s.DeleteAdminVendor)

	admin.Get("/rewards", s.GetAdminRewards)
	admin.Post("/rewards", s.PostAdminReward)
	admin.Put("/rewards/:id", s.PutAdminReward)

	admin.Get("/redemptions/pending", s.GetAdminPendingRedemptions)

	vendor := router.Group("", auth, middleware.RequireVendor)

	vendor.Get("/profile", s.GetVendorProfile)
	vendor.Get("/catalog/items", s.GetCatalogItems)

	vendor.Post("/points/award", s.PostAwardPoints)
	vendor.Get("/points/balance", s.GetPointsBalance)
	vendor.Get("/points/history", s.GetPointsHistory)

	vendor.Get("/rewards", s.GetRewards)
	vendor.Post("/rewards/redeem", s.PostRedeemReward)
	vendor.Get("/redemptions", s.GetRedemptions)
	vendor.Get("/redemptions/:uuid", s.GetRedemption)

	vendor.Post("/pricing/metal-rate", s.PostMetalRate)
	vendor.Get("/pricing/metal-rate", s.GetMetalRate)
}
