package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/middleware"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/utils"
)

// GetAllServices lists services. The public view only contains active
// services; a provider with a valid token also sees their own inactive ones.
// Supports ?provider=<id> filtering.
func GetAllServices(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Service{})

	if providerID := c.QueryInt("provider"); providerID > 0 {
		query = query.Where("provider_id = ?", providerID)
	}

	callerID, callerRole, authenticated := middleware.OptionalIdentity(c)
	if authenticated && callerRole == models.RoleProvider {
		query = query.Where("is_active = ? OR provider_id = ?", true, callerID)
	} else {
		query = query.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}
	return c.JSON(services)
}

// GetService returns one service. Inactive services are only visible to
// their owner.
func GetService(c *fiber.Ctx) error {
	id := c.Params("id")

	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	if !service.IsActive {
		callerID, callerRole, authenticated := middleware.OptionalIdentity(c)
		if !authenticated || callerRole != models.RoleProvider || callerID != service.ProviderID {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Service not found",
			})
		}
	}
	return c.JSON(service)
}

// CreateService adds a service owned by the authenticated provider.
func CreateService(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var service models.Service
	if err := c.BodyParser(&service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	service.ID = 0
	service.ProviderID = userID

	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create service",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService modifies a service. Owner only.
func UpdateService(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	if service.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own services",
		})
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Duration    *int     `json:"duration"`
		Price       *float64 `json:"price"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := db.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update service",
			Error:   err.Error(),
		})
	}
	return c.JSON(service)
}

// DeleteService removes a service. Owner only.
func DeleteService(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	if service.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only delete your own services",
		})
	}

	if err := db.DB.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete service",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
