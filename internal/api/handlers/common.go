package handlers

import (
	"EcoBite-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps typed domain errors to HTTP statuses; anything unmapped
// is treated as a bad request.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrClaimNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedPostAccess),
		errors.Is(err, domain.ErrUnauthorizedClaimAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrDuplicateClaim):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrCredentialsInvalid):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}
