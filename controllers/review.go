package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/utils"
)

// CreateReview records the one review a client may leave on a completed
// appointment.
func CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		AppointmentID uint   `json:"appointment_id"`
		Rating        int    `json:"rating"`
		Comment       string `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	review := models.Review{
		AppointmentID: input.AppointmentID,
		Rating:        input.Rating,
		Comment:       input.Comment,
	}
	if err := review.ValidateRating(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, input.AppointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.ClientID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only review your own appointments",
		})
	}
	if appointment.Status != models.StatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only completed appointments can be reviewed",
		})
	}

	var existing models.Review
	if db.DB.Where("appointment_id = ?", input.AppointmentID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "This appointment has already been reviewed",
		})
	}

	if err := db.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Failed to create review",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetReviews lists reviews, optionally filtered to one provider's
// appointments with ?provider=<id>.
func GetReviews(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Review{}).Preload("Appointment")
	if providerID := c.QueryInt("provider"); providerID > 0 {
		query = query.
			Joins("JOIN appointments ON appointments.id = reviews.appointment_id").
			Where("appointments.provider_id = ?", providerID)
	}

	var reviews []models.Review
	if err := query.Order("reviews.created_at DESC").Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// GetReview returns one review by ID.
func GetReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var review models.Review
	if err := db.DB.Preload("Appointment").First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}
	return c.JSON(review)
}
