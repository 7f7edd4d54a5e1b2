package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medibook/medibook-api/controllers"
	"github.com/medibook/medibook-api/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/api/appointments", middleware.Protected())
	appointment.Get("/", controllers.GetAppointments)
	appointment.Post("/", controllers.CreateAppointment)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Patch("/:id", controllers.UpdateAppointmentStatus)
}
