package middleware

import (
	"go-cafe-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the opaque session token
const SessionCookieName = "session"

// RequireSession resolves the session cookie to a user and stores the user
// info in the request context for downstream handlers
func RequireSession(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		session, err := authService.ResolveSession(token)
		if err != nil {
			c.ClearCookie(SessionCookieName)
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		c.Locals("user_id", session.UserID.String())
		if session.User != nil {
			c.Locals("user_name", session.User.Name)
			c.Locals("user_email", session.User.Email)
			c.Locals("user_role", session.User.Role)
		}

		return c.Next()
	}
}
