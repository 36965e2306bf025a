package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/projetoso/showcase-api/internal/services"
)

// AuthRequired validates the bearer token and stores the resolved
// identity in the request context. Missing, malformed, invalid and
// expired tokens are all 401; 403 is reserved for role mismatches.
func AuthRequired(c *fiber.Ctx) error {
	// Get the Authorization header
	header := c.Get("Authorization")
	if header == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}

	// Ensure it's a Bearer token
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token format"})
	}

	claims, err := services.VerifyJWT(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid or expired token"})
	}

	// Retrieve identity from token
	userID, userExists := claims["user_id"].(string)
	username, nameExists := claims["username"].(string)
	role, roleExists := claims["role"].(string)

	if !userExists || !nameExists || !roleExists {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token payload"})
	}

	// Store user info in context for next handlers
	c.Locals("user_id", userID)
	c.Locals("username", username)
	c.Locals("role", role)

	return c.Next()
}
