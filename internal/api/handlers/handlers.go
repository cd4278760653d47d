package handlers

import (
	"errors"

	"neowealth/internal/dto"
	"neowealth/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("userID").(string)
	return uuid.Parse(raw)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInsufficientBalance):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrWalletNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrHiveFull):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError maps service errors onto HTTP statuses. Unexpected errors
// are logged and hidden behind a generic message.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(status).JSON(dto.Fail("Internal server error"))
	}
	return c.Status(status).JSON(dto.Fail(err.Error()))
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(message))
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Invalid or missing user identity"))
}
