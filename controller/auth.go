package controller

import (
	"time"

	"passkey_auth_ms/config"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
)

const sessionCookie = "session"

type IAuthController interface {
	RegisterPassword(c *fiber.Ctx) error
	LoginPassword(c *fiber.Ctx) error
	Logout(c *fiber.Ctx) error
	Me(c *fiber.Ctx) error
}

type AuthController struct {
	users   services.IUserService
	session services.ISessionService
}

func NewAuthController(users services.IUserService, session services.ISessionService) IAuthController {
	return &AuthController{users: users, session: session}
}

func (ac *AuthController) RegisterPassword(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.RegisterPasswordRequest)

	user, err := ac.users.RegisterWithPassword(body)
	if err != nil {
		return fail(c, err)
	}

	token, err := ac.session.Issue(user)
	if err != nil {
		return fail(c, err)
	}
	setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(response.AuthResponse{
		Success: true,
		User:    &response.UserSummary{Id: user.Id, Email: user.Email},
	})
}

func (ac *AuthController) LoginPassword(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.LoginPasswordRequest)

	user, err := ac.users.LoginWithPassword(body)
	if err != nil {
		return fail(c, err)
	}

	token, err := ac.session.Issue(user)
	if err != nil {
		return fail(c, err)
	}
	setSessionCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(response.AuthResponse{
		Success: true,
		User:    &response.UserSummary{Id: user.Id, Email: user.Email},
	})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// Me resolves the current session. An absent or stale session is not an
// error here, the caller just gets a null user.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user, err := ac.session.CurrentUser(c.Cookies(sessionCookie))
	if err != nil {
		return fail(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusOK).JSON(response.ProfileResponse{User: nil})
	}

	profile, err := ac.users.Profile(user.Id)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(response.ProfileResponse{User: profile})
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		MaxAge:   config.Conf.Application.Security.SessionValidityInSeconds,
		HTTPOnly: true,
		Secure:   config.Conf.Application.Production(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   config.Conf.Application.Production(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}
