package controller

import (
	"errors"

	"passkey_auth_ms/domain"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain failures onto HTTP statuses. Anything unrecognized
// is treated as a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedRequest),
		errors.Is(err, domain.ErrMissingCredentialID),
		errors.Is(err, domain.ErrInvalidCredentialData),
		errors.Is(err, domain.ErrEmailTaken):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrChallengeExpired),
		errors.Is(err, domain.ErrVerificationFailed),
		errors.Is(err, domain.ErrReplayDetected),
		errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAuthenticatorNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
