package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/medibook/medibook-api/chatbot"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/models"
)

type chatbotDoctor struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// Chatbot answers free-text specialization queries with up to five matching
// providers.
func Chatbot(c *fiber.Ctx) error {
	var input struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	specialization, ok := chatbot.MatchSpecialization(input.Message)
	if !ok {
		return c.JSON(fiber.Map{
			"message": chatbot.HelpMessage,
			"doctors": []chatbotDoctor{},
		})
	}

	var providers []models.User
	if err := db.DB.Preload("ProviderProfile").
		Joins("JOIN provider_profiles ON provider_profiles.user_id = users.id").
		Where("users.role = ?", models.RoleProvider).
		Where("LOWER(provider_profiles.specialization) LIKE ?", "%"+strings.ToLower(specialization)+"%").
		Limit(5).
		Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up providers",
		})
	}

	if len(providers) == 0 {
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("I understood you are looking for %s, but I couldn't find any doctors with that specialization right now.", specialization),
			"doctors": []chatbotDoctor{},
		})
	}

	doctors := make([]chatbotDoctor, 0, len(providers))
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		name := "Dr. " + p.LastName
		spec := specialization
		if p.ProviderProfile != nil {
			spec = p.ProviderProfile.Specialization
		}
		doctors = append(doctors, chatbotDoctor{ID: p.ID, Name: name, Specialization: spec})
		names = append(names, fmt.Sprintf("%s (%s)", name, spec))
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("I found the following %s specialists for you: %s.", specialization, strings.Join(names, ", ")),
		"doctors": doctors,
	})
}
