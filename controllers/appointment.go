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

// GetAppointments lists the caller's appointments. Providers see bookings
// against them, everyone else sees what they booked; never cross-visible.
func GetAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.Role)

	query := db.DB.Preload("Service").Preload("Client").Preload("Provider")
	if role == models.RoleProvider {
		query = query.Where("provider_id = ?", userID)
	} else {
		query = query.Where("client_id = ?", userID)
	}

	var appointments []models.Appointment
	if err := query.Order("date, time_slot").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	for i := range appointments {
		appointments[i].Client.Password = ""
		appointments[i].Provider.Password = ""
	}
	return c.JSON(appointments)
}

// GetAppointment returns one appointment to one of its two parties.
func GetAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Client").Preload("Provider").
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.ClientID != userID && appointment.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not a party to this appointment",
		})
	}
	appointment.Client.Password = ""
	appointment.Provider.Password = ""
	return c.JSON(appointment)
}

// CreateAppointment books a slot for the authenticated client. The provider
// is derived from the service; supplying one explicitly is an error.
func CreateAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		ServiceID  uint   `json:"service_id"`
		ProviderID uint   `json:"provider_id"`
		Date       string `json:"date"`      // "YYYY-MM-DD"
		TimeSlot   string `json:"time_slot"` // "HH:MM"
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if input.ProviderID != 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "provider_id is derived from the service and must not be supplied",
		})
	}
	if input.ServiceID == 0 || input.Date == "" || input.TimeSlot == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "service_id, date and time_slot are required",
		})
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format. Please use YYYY-MM-DD.",
		})
	}

	engine := booking.NewEngine(db.DB)
	appointment, err := engine.Book(booking.Request{
		ClientID:  userID,
		ServiceID: input.ServiceID,
		Date:      date,
		TimeSlot:  input.TimeSlot,
		Notes:     input.Notes,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// UpdateAppointmentStatus runs the lifecycle state machine on behalf of the
// caller: body {"status": "..."}.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.Role)
	id := c.Params("id")

	var input struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	switch input.Status {
	case models.StatusConfirmed, models.StatusRejected, models.StatusCancelled, models.StatusCompleted:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status. Must be 'CONFIRMED', 'REJECTED', 'CANCELLED' or 'COMPLETED'.",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.ClientID != userID && appointment.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not a party to this appointment",
		})
	}

	if err := appointment.UpdateStatus(db.DB, input.Status, userID, role); err != nil {
		switch {
		case errors.Is(err, models.ErrForbiddenTransition):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, models.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update appointment",
			})
		}
	}
	return c.JSON(appointment)
}

// bookingError maps engine sentinels to the HTTP taxonomy.
func bookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, booking.ErrServiceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrSlotConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrServiceInactive),
		errors.Is(err, booking.ErrOutsideAvailability),
		errors.Is(err, booking.ErrPastSchedule),
		errors.Is(err, booking.ErrInvalidSlot):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}
}
