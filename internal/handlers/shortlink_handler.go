package handlers

import (
	"errors"

	"foodgram/internal/domain"
	"foodgram/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ShortLinkHandler redirects /s/{code} to the recipe page.
type ShortLinkHandler struct {
	shortcode *services.ShortcodeService
	baseURL   string
}

func NewShortLinkHandler(shortcode *services.ShortcodeService, baseURL string) *ShortLinkHandler {
	return &ShortLinkHandler{shortcode: shortcode, baseURL: baseURL}
}

func (h *ShortLinkHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	router.Get("/s/:code", guards.throttle(), h.HandleRedirect)
}

// HandleRedirect sends a 302 to /recipes/{id}, or to /not-found for an
// unknown code.
func (h *ShortLinkHandler) HandleRedirect(c *fiber.Ctx) error {
	base := publicBase(c, h.baseURL)

	recipe, err := h.shortcode.Resolve(c.UserContext(), c.Params("code"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Redirect(base+"/not-found", fiber.StatusFound)
		}
		return respondError(c, err)
	}
	return c.Redirect(base+"/recipes/"+recipe.ID, fiber.StatusFound)
}
