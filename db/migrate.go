package db

import (
	"log"

	"github.com/medibook/medibook-api/models"
	"gorm.io/gorm"
)

// Migrate runs AutoMigrate for every model. Called explicitly, never as a
// side effect of Init.
func Migrate() {
	if DB == nil {
		Init()
	}
	if err := AutoMigrate(DB); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	log.Println("Migrations applied")
}

// AutoMigrate creates the schema on the given connection. Split out so tests
// can migrate an in-memory database.
func AutoMigrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.ProviderProfile{},
		&models.Service{},
		&models.Availability{},
		&models.Appointment{},
		&models.Review{},
	)
}
