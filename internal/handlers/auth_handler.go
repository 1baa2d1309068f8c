package handlers

import (
	"foodgram/internal/domain"
	"foodgram/internal/logging"
	"foodgram/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    NewValidator(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	authRoutes := router.Group("/auth/token")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", guards.Required, h.HandleLogout)
}

// HandleLogin exchanges email and password for a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		logging.Debug().Err(err).Str("email", req.Email).Msg("login failed")
		return respondError(c, err)
	}
	return c.JSON(domain.TokenResponse{AuthToken: token})
}

// HandleLogout acknowledges the logout. Tokens are stateless and expire
// on their own.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
