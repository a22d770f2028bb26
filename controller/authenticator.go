package controller

import (
	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IAuthenticatorController interface {
	Delete(c *fiber.Ctx) error
}

type AuthenticatorController struct {
	users services.IUserService
}

func NewAuthenticatorController(users services.IUserService) IAuthenticatorController {
	return &AuthenticatorController{users: users}
}

func (ac *AuthenticatorController) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}

	body := c.Locals("body").(*request.DeleteAuthenticatorRequest)
	if body.CredentialId == "" {
		return fail(c, domain.ErrMissingCredentialID)
	}

	if err := ac.users.DeleteAuthenticator(userID, body.CredentialId); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
