package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/middleware"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/redis"
	"github.com/medibook/medibook-api/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Register creates a new account. The role defaults to CLIENT; registering
// as PROVIDER also creates the 1:1 provider profile.
func Register(c *fiber.Ctx) error {
	var input struct {
		Email          string      `json:"email"`
		Password       string      `json:"password"`
		Role           models.Role `json:"role"`
		FirstName      string      `json:"first_name"`
		LastName       string      `json:"last_name"`
		Phone          string      `json:"phone"`
		BusinessName   string      `json:"business_name"`
		Specialization string      `json:"specialization"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if input.Role == "" {
		input.Role = models.RoleClient
	}
	if !models.ValidRole(input.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown role",
		})
	}

	var existing models.User
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User with this email already exists",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Email:     input.Email,
		Password:  string(hashed),
		Role:      input.Role,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	}
	if user.Role == models.RoleProvider {
		user.ProviderProfile = &models.ProviderProfile{
			BusinessName:   input.BusinessName,
			Specialization: input.Specialization,
		}
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login exchanges credentials for an access/refresh token pair.
func Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	access, err := signToken(user, accessTokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}
	refresh, err := signToken(user, refreshTokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate refresh token",
		})
	}
	if err := redis.StoreRefreshToken(user.ID, refresh, refreshTokenTTL); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record refresh token",
		})
	}

	return c.JSON(fiber.Map{
		"access":  access,
		"refresh": refresh,
		"user": fiber.Map{
			"id":         user.ID,
			"email":      user.Email,
			"role":       user.Role,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}

// RefreshToken issues a fresh access token from a live refresh token.
func RefreshToken(c *fiber.Ctx) error {
	var input struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	userID, ok := parseRefreshToken(input.Refresh)
	if !ok || !redis.RefreshTokenActive(userID, input.Refresh) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	access, err := signToken(user, accessTokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}
	return c.JSON(fiber.Map{"access": access})
}

// Logout revokes the presented refresh token. Access tokens stay valid until
// expiry; only the refresh chain is cut.
func Logout(c *fiber.Ctx) error {
	var input struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	userID := c.Locals("userID").(uint)
	if input.Refresh != "" {
		if err := redis.RevokeRefreshToken(userID, input.Refresh); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to revoke refresh token",
			})
		}
	}
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

// GetUserProfile returns the authenticated user, provider profile included.
func GetUserProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.Preload("ProviderProfile").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	user.Password = ""
	return c.JSON(user)
}

// ListProviders returns provider accounts with their profiles.
func ListProviders(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	var providers []models.User
	if err := db.DB.Preload("ProviderProfile").
		Where("role = ?", models.RoleProvider).
		Limit(limit).
		Offset(offset).
		Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch providers",
		})
	}
	for i := range providers {
		providers[i].Password = ""
	}

	var count int64
	db.DB.Model(&models.User{}).Where("role = ?", models.RoleProvider).Count(&count)

	return c.JSON(fiber.Map{
		"providers": providers,
		"total":     count,
		"page":      page,
		"limit":     limit,
	})
}

// UploadProfilePicture stores a provider profile image on Cloudinary.
func UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.ProviderProfile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider profile not found",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing image file",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot read image file",
		})
	}
	defer file.Close()

	url, err := utils.UploadProfileImage(file, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload image",
			Error:   err.Error(),
		})
	}

	profile.ProfileImageURL = url
	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save profile",
		})
	}
	return c.JSON(fiber.Map{"profile_image_url": url})
}

func signToken(user models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.Secret())
}

func parseRefreshToken(tokenString string) (uint, bool) {
	if tokenString == "" {
		return 0, false
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return middleware.Secret(), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}
