package middleware

import (
	"strings"

	"foodgram/internal/logging"
	"foodgram/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// extractToken accepts "Token <jwt>" and "Bearer <jwt>".
func extractToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	switch parts[0] {
	case "Token", "Bearer":
		return parts[1], true
	}
	return "", false
}

func authenticate(c *fiber.Ctx, authService *services.AuthService) error {
	token, ok := extractToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authorization header format must be 'Token <token>'")
	}

	claims, err := authService.ValidateToken(token)
	if err != nil {
		logging.Debug().Err(err).Msg("JWT validation failed")
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	c.Locals(LocalUserID, userID)
	c.Locals(LocalUsername, claims["username"])
	return nil
}

// AuthRequired rejects requests without a valid token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Authentication credentials were not provided.",
			})
		}
		if err := authenticate(c, authService); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": err.Error(),
			})
		}
		return c.Next()
	}
}

// AuthOptional identifies the viewer when a token is sent and lets
// anonymous requests through. A bad token is still rejected.
func AuthOptional(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		if err := authenticate(c, authService); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": err.Error(),
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated user, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
