package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medibook/medibook-api/controllers"
	"github.com/medibook/medibook-api/middleware"
	"github.com/medibook/medibook-api/models"
)

// SetupAvailabilityRoutes configures the provider availability routes.
// The /check probe is public; everything else is scoped to the
// authenticated provider's own windows.
func SetupAvailabilityRoutes(app *fiber.App) {
	availability := app.Group("/api/availability")
	availability.Get("/check", controllers.CheckSlot)

	provider := []fiber.Handler{middleware.Protected(), middleware.RequireRole(models.RoleProvider)}
	availability.Get("/", append(provider, controllers.GetAvailabilities)...)
	availability.Post("/", append(provider, controllers.CreateAvailability)...)
	availability.Get("/:id", append(provider, controllers.GetAvailability)...)
	availability.Put("/:id", append(provider, controllers.UpdateAvailability)...)
	availability.Patch("/:id", append(provider, controllers.UpdateAvailability)...)
	availability.Delete("/:id", append(provider, controllers.DeleteAvailability)...)
}
