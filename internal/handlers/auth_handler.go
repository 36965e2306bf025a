package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projetoso/showcase-api/internal/services"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterHandler(c *fiber.Ctx) error {
	var request credentialsRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	user, err := services.RegisterUser(request.Username, request.Email, request.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := services.GenerateJWT(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func LoginHandler(c *fiber.Ctx) error {
	var request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	token, user, err := services.LoginUser(request.Username, request.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// MeHandler returns the acting identity's own record.
func MeHandler(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	user, err := services.GetUserByID(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// CreateAdminHandler bootstraps the first admin account; it is
// rejected once any admin exists.
func CreateAdminHandler(c *fiber.Ctx) error {
	var request credentialsRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	user, err := services.CreateAdmin(request.Username, request.Email, request.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := services.GenerateJWT(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
