package handlers

import (
	"Reelhouse/internal/services"
	"errors"
	"github.com/gofiber/fiber/v2"
	"io/fs"
	"net/http"
	"strconv"
)

// statusOf maps service errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrCategoryNotProvisioned),
		errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrNotHistoryFile):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrProjectExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(map[string]interface{}{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": message})
}

func projectID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
