package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projetoso/showcase-api/internal/services"
)

func ListProjects(c *fiber.Ctx) error {
	projects, err := services.ListProjects()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(projects)
}

// CreateProject accepts a JSON body or a multipart form with image and
// video uploads.
func CreateProject(c *fiber.Ctx) error {
	project, err := services.CreateProject(c)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func UpdateProject(c *fiber.Ctx) error {
	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	project, err := services.UpdateProject(c.Params("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(project)
}

func DeleteProject(c *fiber.Ctx) error {
	if err := services.DeleteProject(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project deleted successfully"})
}
