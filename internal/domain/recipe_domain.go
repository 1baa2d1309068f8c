package domain

import "foodgram/internal/models"

type (
	IngredientAmount struct {
		ID     string `json:"id" validate:"required"`
		Amount int    `json:"amount" validate:"required,min=1,max=32767"`
	}

	RecipeCreateRequest struct {
		Ingredients []IngredientAmount `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
		Tags        []string           `json:"tags" validate:"required,min=1,unique,dive,required"`
		Image       string             `json:"image" validate:"required"`
		Name        string             `json:"name" validate:"required,max=200"`
		Text        string             `json:"text" validate:"required"`
		CookingTime int                `json:"cooking_time" validate:"required,min=1,max=32000"`
	}

	// RecipeUpdateRequest replaces tags and ingredients wholesale. Image is
	// kept when omitted.
	RecipeUpdateRequest struct {
		Ingredients []IngredientAmount `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
		Tags        []string           `json:"tags" validate:"required,min=1,unique,dive,required"`
		Image       string             `json:"image"`
		Name        string             `json:"name" validate:"required,max=200"`
		Text        string             `json:"text" validate:"required"`
		CookingTime int                `json:"cooking_time" validate:"required,min=1,max=32000"`
	}

	RecipeListQuery struct {
		Page             PageRequest
		AuthorID         string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	RecipeIngredientView struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	// RecipeView is a recipe with flags computed for one viewer.
	RecipeView struct {
		ID               string                 `json:"id"`
		Tags             []models.Tag           `json:"tags"`
		Author           UserView               `json:"author"`
		Ingredients      []RecipeIngredientView `json:"ingredients"`
		IsFavorited      bool                   `json:"is_favorited"`
		IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
		Name             string                 `json:"name"`
		Image            string                 `json:"image"`
		Text             string                 `json:"text"`
		CookingTime      int                    `json:"cooking_time"`
	}

	RecipeShortView struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	ShortLinkResponse struct {
		ShortLink string `json:"short-link"`
	}

	// ShoppingItem is one aggregated line of a shopping list.
	ShoppingItem struct {
		Name            string
		MeasurementUnit string
		TotalAmount     int64
	}
)

// NewRecipeShortView trims a recipe to its card fields.
func NewRecipeShortView(r *models.Recipe) RecipeShortView {
	return RecipeShortView{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
