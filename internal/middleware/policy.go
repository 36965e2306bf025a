package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projetoso/showcase-api/internal/models"
)

// RoleAny marks operations open to any authenticated identity.
const RoleAny = ""

// policy is the single place where (resource, action) maps to the
// required role. Handlers never check roles themselves.
var policy = map[string]string{
	"projects.create": RoleAny,
	"projects.update": models.RoleAdmin,
	"projects.delete": models.RoleAdmin,

	"events.create": models.RoleAdmin,
	"events.update": models.RoleAdmin,
	"events.delete": models.RoleAdmin,

	"users.list":   models.RoleAdmin,
	"users.read":   models.RoleAdmin,
	"users.update": models.RoleAdmin,
	"users.delete": models.RoleAdmin,
}

// Authorize gates a route on the policy table. It assumes AuthRequired
// already ran; unknown (resource, action) pairs are denied.
func Authorize(resource, action string) fiber.Handler {
	required, known := policy[resource+"."+action]

	return func(c *fiber.Ctx) error {
		if !known {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		}
		role, _ := c.Locals("role").(string)
		if required != RoleAny && role != required {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. Admins only."})
		}
		return c.Next()
	}
}
