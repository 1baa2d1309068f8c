package handlers

import (
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/middleware"
	"foodgram/internal/repositories"
	"foodgram/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecipeHandler serves /recipes and its actions.
type RecipeHandler struct {
	recipes   *services.RecipeService
	shopping  *services.ShoppingListService
	shortcode *services.ShortcodeService
	validate  *validator.Validate
	pageSize  int
	baseURL   string
}

// NewRecipeHandler creates a new RecipeHandler. baseURL overrides the
// request origin in share links when set.
func NewRecipeHandler(
	recipes *services.RecipeService,
	shopping *services.ShoppingListService,
	shortcode *services.ShortcodeService,
	pageSize int,
	baseURL string,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		shopping:  shopping,
		shortcode: shortcode,
		validate:  NewValidator(),
		pageSize:  pageSize,
		baseURL:   baseURL,
	}
}

// RegisterRoutes registers the recipe routes. download_shopping_cart must
// precede /:id.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	recipes := router.Group("/recipes")
	recipes.Get("/", guards.Optional, h.HandleList)
	recipes.Post("/", guards.Required, h.HandleCreate)
	recipes.Get("/download_shopping_cart", guards.Required, h.HandleDownloadShoppingCart)
	recipes.Get("/:id", guards.Optional, h.HandleGet)
	recipes.Patch("/:id", guards.Required, h.HandleUpdate)
	recipes.Delete("/:id", guards.Required, h.HandleDelete)
	recipes.Get("/:id/get-link", guards.throttle(), h.HandleGetLink)
	recipes.Post("/:id/favorite", guards.Required, h.collectionAdd(repositories.FavoriteList))
	recipes.Delete("/:id/favorite", guards.Required, h.collectionRemove(repositories.FavoriteList))
	recipes.Post("/:id/shopping_cart", guards.Required, h.collectionAdd(repositories.ShoppingCart))
	recipes.Delete("/:id/shopping_cart", guards.Required, h.collectionRemove(repositories.ShoppingCart))
}

func (h *RecipeHandler) HandleList(c *fiber.Ctx) error {
	query := domain.RecipeListQuery{
		Page:             pageRequest(c, h.pageSize),
		AuthorID:         c.Query("author"),
		IsFavorited:      queryFlag(c, "is_favorited"),
		IsInShoppingCart: queryFlag(c, "is_in_shopping_cart"),
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		query.TagSlugs = append(query.TagSlugs, string(slug))
	}

	views, count, err := h.recipes.List(c.UserContext(), middleware.UserID(c), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(paginate(c, query.Page, count, views))
}

func queryFlag(c *fiber.Ctx, name string) bool {
	switch c.Query(name) {
	case "1", "true", "True":
		return true
	}
	return false
}

func (h *RecipeHandler) HandleGet(c *fiber.Ctx) error {
	view, err := h.recipes.Get(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *RecipeHandler) HandleCreate(c *fiber.Ctx) error {
	var req domain.RecipeCreateRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	view, err := h.recipes.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *RecipeHandler) HandleUpdate(c *fiber.Ctx) error {
	var req domain.RecipeUpdateRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	view, err := h.recipes.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *RecipeHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.recipes.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RecipeHandler) collectionAdd(kind repositories.ListKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := h.recipes.AddTo(c.UserContext(), kind, middleware.UserID(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	}
}

func (h *RecipeHandler) collectionRemove(kind repositories.ListKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := h.recipes.RemoveFrom(c.UserContext(), kind, middleware.UserID(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// HandleGetLink returns the share link, assigning a code on first call.
func (h *RecipeHandler) HandleGetLink(c *fiber.Ctx) error {
	link, err := h.shortcode.BuildLink(c.UserContext(), c.Params("id"), publicBase(c, h.baseURL))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(domain.ShortLinkResponse{ShortLink: link})
}

// HandleDownloadShoppingCart streams the aggregated shopping list.
func (h *RecipeHandler) HandleDownloadShoppingCart(c *fiber.Ctx) error {
	report, err := h.shopping.Report(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", services.ShoppingListFilename))
	return c.Status(fiber.StatusOK).SendString(report)
}

// publicBase is the configured origin or, failing that, the request's.
func publicBase(c *fiber.Ctx, configured string) string {
	if configured != "" {
		return configured
	}
	return c.BaseURL()
}
