package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projetoso/showcase-api/internal/services"
)

// List all users
func ListUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

// Get user details by ID
func GetUserByID(c *fiber.Ctx) error {
	user, err := services.GetUserByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func UpdateUser(c *fiber.Ctx) error {
	var patch services.UserUpdate
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	user, err := services.UpdateUser(c.Params("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func DeleteUser(c *fiber.Ctx) error {
	actingID, _ := c.Locals("user_id").(string)

	if err := services.DeleteUser(c.Params("id"), actingID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
