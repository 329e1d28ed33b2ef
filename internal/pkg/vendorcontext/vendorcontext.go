package vendorcontext

import "github.com/gofiber/fiber/v2"

// Shared Locals keys used across controllers and middlewares
const (
	ContextKey       = "VENDOR_CONTEXT"
	KeyIsAdmin       = "isAdmin"
	KeyFromProtected = "from_protected"
)

// VendorContext represents the authenticated vendor for a request
type VendorContext struct {
	VendorID     uint   `json:"vendor_id"`
	BusinessName string `json:"business_name"`
	IsLoggedIn   bool   `json:"is_logged_in"`
	IsAdmin      bool   `json:"is_admin"`
}

// GetVendorContext retrieves the vendor context from fiber context.
// Returns a default anonymous context if none is set
func GetVendorContext(c *fiber.Ctx) VendorContext {
	if ctx := c.Locals(ContextKey); ctx != nil {
		return ctx.(VendorContext)
	}
	return VendorContext{IsLoggedIn: false, IsAdmin: false}
}

// IsLoggedIn checks if the current request carries an authenticated vendor
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetVendorContext(c).IsLoggedIn
}

// IsAdmin checks if the current vendor is an admin
func IsAdmin(c *fiber.Ctx) bool {
	return GetVendorContext(c).IsAdmin
}

// GetVendorID returns the current vendor's ID, or 0 if not authenticated
func GetVendorID(c *fiber.Ctx) uint {
	return GetVendorContext(c).VendorID
}
