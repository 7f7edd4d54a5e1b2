package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medibook/medibook-api/controllers"
)

// SetupChatbotRoutes configures the public chatbot endpoint
func SetupChatbotRoutes(app *fiber.App) {
	app.Post("/api/chatbot", controllers.Chatbot)
}
