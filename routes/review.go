package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medibook/medibook-api/controllers"
	"github.com/medibook/medibook-api/middleware"
)

// SetupReviewRoutes configures all review related routes
func SetupReviewRoutes(app *fiber.App) {
	review := app.Group("/api/reviews")
	review.Get("/", controllers.GetReviews)
	review.Get("/:id", controllers.GetReview)
	review.Post("/", middleware.Protected(), controllers.CreateReview)
}
