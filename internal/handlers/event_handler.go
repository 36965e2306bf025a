package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projetoso/showcase-api/internal/services"
)

func ListEvents(c *fiber.Ctx) error {
	events, err := services.ListEvents()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(events)
}

func CreateEvent(c *fiber.Ctx) error {
	var draft services.EventDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	event, err := services.CreateEvent(draft)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func UpdateEvent(c *fiber.Ctx) error {
	var patch services.EventDraft
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	event, err := services.UpdateEvent(c.Params("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(event)
}

func DeleteEvent(c *fiber.Ctx) error {
	if err := services.DeleteEvent(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted successfully"})
}
