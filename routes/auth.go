package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medibook/medibook-api/controllers"
	"github.com/medibook/medibook-api/middleware"
	"github.com/medibook/medibook-api/models"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Get("/providers", controllers.ListProviders)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/me/picture", middleware.Protected(), middleware.RequireRole(models.RoleProvider), controllers.UploadProfilePicture)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
