package handlers

import (
	"foodgram/internal/domain"
	"foodgram/internal/middleware"
	"foodgram/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves /users.
type UserHandler struct {
	users    *services.UserService
	auth     *services.AuthService
	validate *validator.Validate
	pageSize int
}

func NewUserHandler(users *services.UserService, auth *services.AuthService, pageSize int) *UserHandler {
	return &UserHandler{users: users, auth: auth, validate: NewValidator(), pageSize: pageSize}
}

func (h *UserHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	users := router.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Get("/", guards.Optional, h.HandleList)
	users.Get("/me", guards.Required, h.HandleMe)
	users.Post("/set_password", guards.Required, h.HandleSetPassword)
	users.Put("/me/avatar", guards.Required, h.HandleSetAvatar)
	users.Delete("/me/avatar", guards.Required, h.HandleDeleteAvatar)
	users.Get("/subscriptions", guards.Required, h.HandleSubscriptions)
	users.Get("/:id", guards.Optional, h.HandleGet)
	users.Post("/:id/subscribe", guards.Required, h.HandleSubscribe)
	users.Delete("/:id/subscribe", guards.Required, h.HandleUnsubscribe)
}

func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.auth.RegisterUser(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(domain.UserCreatedResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	page := pageRequest(c, h.pageSize)
	views, count, err := h.users.List(c.UserContext(), middleware.UserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(paginate(c, page, count, views))
}

func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	view, err := h.users.Get(c.UserContext(), userID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	view, err := h.users.Get(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *UserHandler) HandleSetPassword(c *fiber.Ctx) error {
	var req domain.SetPasswordRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.auth.SetPassword(c.UserContext(), middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) HandleSetAvatar(c *fiber.Ctx) error {
	var req domain.AvatarRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	url, err := h.users.SetAvatar(c.UserContext(), middleware.UserID(c), req.Avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(domain.AvatarResponse{Avatar: url})
}

func (h *UserHandler) HandleDeleteAvatar(c *fiber.Ctx) error {
	if err := h.users.DeleteAvatar(c.UserContext(), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) HandleSubscriptions(c *fiber.Ctx) error {
	page := pageRequest(c, h.pageSize)
	views, count, err := h.users.Subscriptions(c.UserContext(), middleware.UserID(c), page, recipesLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(paginate(c, page, count, views))
}

func (h *UserHandler) HandleSubscribe(c *fiber.Ctx) error {
	view, err := h.users.Subscribe(c.UserContext(), middleware.UserID(c), c.Params("id"), recipesLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *UserHandler) HandleUnsubscribe(c *fiber.Ctx) error {
	if err := h.users.Unsubscribe(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// recipesLimit reads ?recipes_limit; absent or invalid means no limit.
func recipesLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("recipes_limit", -1)
	if limit < 0 {
		return -1
	}
	return limit
}
