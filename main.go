package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/medibook/medibook-api/cron"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/redis"
	"github.com/medibook/medibook-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	if os.Getenv("REDIS_ADDR") != "" {
		redis.InitRedis()
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupAvailabilityRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupReviewRoutes(app)
	routes.SetupChatbotRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
