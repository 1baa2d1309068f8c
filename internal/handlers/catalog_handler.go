package handlers

import (
	"foodgram/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the tag and ingredient catalogs. Both are
// unpaginated.
type CatalogHandler struct {
	service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/tags", h.HandleListTags)
	router.Get("/tags/:id", h.HandleGetTag)
	router.Get("/ingredients", h.HandleListIngredients)
	router.Get("/ingredients/:id", h.HandleGetIngredient)
}

func (h *CatalogHandler) HandleListTags(c *fiber.Ctx) error {
	tags, err := h.service.ListTags(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

func (h *CatalogHandler) HandleGetTag(c *fiber.Ctx) error {
	tag, err := h.service.GetTag(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

func (h *CatalogHandler) HandleListIngredients(c *fiber.Ctx) error {
	ingredients, err := h.service.ListIngredients(c.UserContext(), c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ingredients)
}

func (h *CatalogHandler) HandleGetIngredient(c *fiber.Ctx) error {
	ingredient, err := h.service.GetIngredient(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ingredient)
}
