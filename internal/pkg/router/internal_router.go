package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velorajewels/velora/app/controllers"
	"github.com/velorajewels/velora/internal/pkg/middleware"
)

// InternalRouter holds routes for machine callers: the external scheduler
// and operational probes. No end-user authentication applies here.
type InternalRouter struct {
}

func (h InternalRouter) InstallRouter(app *fiber.App) {
	internal := app.Group("/api/internal", middleware.SchedulerAuthMiddleware())
	internal.Post("/sweep-expired-points", controllers.HandleSweepExpiredPoints)

	app.Get("/up", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
}

func NewInternalRouter() *InternalRouter {
	return &InternalRouter{}
}
