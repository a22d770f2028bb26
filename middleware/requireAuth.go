package middleware

import (
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
)

const sessionCookie = "session"

// AuthMiddleware resolves the session cookie into a user and rejects the
// request when it cannot.
func AuthMiddleware(session services.ISessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := session.CurrentUser(c.Cookies(sessionCookie))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "not authenticated",
			})
		}

		c.Locals("userId", user.Id)
		c.Locals("user", user)
		return c.Next()
	}
}
