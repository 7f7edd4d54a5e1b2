package middleware

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/medibook/medibook-api/models"
)

// Secret returns the JWT signing key.
func Secret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev_secret_key" // replaced by JWT_SECRET in production
	}
	return []byte(secret)
}

// Protected validates the bearer token and stashes userID and role in the
// request locals for downstream handlers.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   Secret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			userID, err := extractUserID(claims)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid user ID in token",
				})
			}
			role, ok := claims["role"].(string)
			if !ok || !models.ValidRole(models.Role(role)) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid role in token",
				})
			}

			c.Locals("userID", userID)
			c.Locals("role", models.Role(role))
			return c.Next()
		},
	})
}

// RequireRole rejects callers whose token carries a different role. Must run
// after Protected.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actual, ok := c.Locals("role").(models.Role)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthenticated",
			})
		}
		if actual != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have the required role to perform this action",
			})
		}
		return c.Next()
	}
}

// OptionalIdentity parses the Authorization header if one is present,
// without failing the request. Public endpoints use it to widen the
// response for authenticated owners (e.g. a provider listing their own
// inactive services).
func OptionalIdentity(c *fiber.Ctx) (uint, models.Role, bool) {
	header := c.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return 0, "", false
	}

	token, err := jwt.Parse(header[len(prefix):], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return Secret(), nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}
	userID, err := extractUserID(claims)
	if err != nil {
		return 0, "", false
	}
	role, ok := claims["role"].(string)
	if !ok || !models.ValidRole(models.Role(role)) {
		return 0, "", false
	}
	return userID, models.Role(role), true
}

// extractUserID handles the numeric formats the id claim shows up in after
// JSON round-trips.
func extractUserID(claims jwt.MapClaims) (uint, error) {
	switch v := claims["id"].(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	case nil:
		return 0, fmt.Errorf("no ID found in claims")
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
