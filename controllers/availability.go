package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medibook/medibook-api/booking"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/utils"
)

// GetAvailabilities lists the authenticated provider's recurring windows.
func GetAvailabilities(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var windows []models.Availability
	if err := db.DB.Where("provider_id = ?", userID).
		Order("day_of_week, start_time").
		Find(&windows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}
	return c.JSON(windows)
}

// GetAvailability returns one window, scoped to its owner.
func GetAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var window models.Availability
	if err := db.DB.Where("provider_id = ?", userID).First(&window, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability not found",
		})
	}
	return c.JSON(window)
}

// CreateAvailability declares a new recurring window for the authenticated
// provider. A second window with the same day and start time is rejected.
func CreateAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		DayOfWeek time.Weekday `json:"day_of_week"`
		StartTime string       `json:"start_time"`
		EndTime   string       `json:"end_time"`
		IsActive  *bool        `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	window := models.Availability{
		ProviderID: userID,
		DayOfWeek:  input.DayOfWeek,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		IsActive:   true,
	}
	if input.IsActive != nil {
		window.IsActive = *input.IsActive
	}

	var duplicate models.Availability
	if db.DB.Where("provider_id = ? AND day_of_week = ? AND start_time = ?",
		userID, window.DayOfWeek, window.StartTime).
		First(&duplicate).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A window already starts at this time on this day",
		})
	}

	if err := db.DB.Create(&window).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create availability",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(window)
}

// UpdateAvailability modifies a window, scoped to its owner.
func UpdateAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var window models.Availability
	if err := db.DB.Where("provider_id = ?", userID).First(&window, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability not found",
		})
	}

	var input struct {
		DayOfWeek *time.Weekday `json:"day_of_week"`
		StartTime *string       `json:"start_time"`
		EndTime   *string       `json:"end_time"`
		IsActive  *bool         `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if input.DayOfWeek != nil {
		window.DayOfWeek = *input.DayOfWeek
	}
	if input.StartTime != nil {
		window.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		window.EndTime = *input.EndTime
	}
	if input.IsActive != nil {
		window.IsActive = *input.IsActive
	}

	var duplicate models.Availability
	if db.DB.Where("provider_id = ? AND day_of_week = ? AND start_time = ? AND id <> ?",
		userID, window.DayOfWeek, window.StartTime, window.ID).
		First(&duplicate).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A window already starts at this time on this day",
		})
	}

	if err := db.DB.Save(&window).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update availability",
			Error:   err.Error(),
		})
	}
	return c.JSON(window)
}

// DeleteAvailability removes a window, scoped to its owner.
func DeleteAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var window models.Availability
	if err := db.DB.Where("provider_id = ?", userID).First(&window, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability not found",
		})
	}
	if err := db.DB.Delete(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete availability",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckSlot is the public read-only slot probe backing calendar displays:
// GET /api/availability/check?provider=&date=&time_slot=&duration=
func CheckSlot(c *fiber.Ctx) error {
	providerID := c.QueryInt("provider")
	duration := c.QueryInt("duration")
	timeSlot := c.Query("time_slot")

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil || providerID <= 0 || duration <= 0 || timeSlot == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "provider, date (YYYY-MM-DD), time_slot (HH:MM) and duration are required",
		})
	}

	engine := booking.NewEngine(db.DB)
	available, err := engine.IsSlotAvailable(uint(providerID), date, timeSlot, duration)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidSlot) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid time slot format",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check availability",
		})
	}
	return c.JSON(fiber.Map{"available": available})
}
