package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/projetoso/showcase-api/internal/services"
	"github.com/projetoso/showcase-api/internal/storage"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAdminExists):
		return fiber.StatusForbidden
	case errors.Is(err, storage.ErrUnsupportedMedia):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrDuplicate),
		errors.Is(err, services.ErrNoImage),
		errors.Is(err, services.ErrSelfDeletion),
		errors.Is(err, storage.ErrFileTooLarge):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// fail translates a service error into a JSON response. Unexpected
// errors are logged and masked; the client never sees internals.
func fail(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}
