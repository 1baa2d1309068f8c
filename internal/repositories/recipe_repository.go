package repositories

import (
	"context"

	"foodgram/internal/models"
)

// RecipeFilter narrows a recipe listing. Empty fields do not filter.
type RecipeFilter struct {
	AuthorID    string
	TagSlugs    []string
	FavoritedBy string
	InCartOf    string
	Offset      int
	Limit       int
}

// RecipeRepository defines the interface for recipe data access.
type RecipeRepository interface {
	// Create stores the recipe with its Tags and Ingredients in one transaction.
	Create(ctx context.Context, recipe *models.Recipe) error
	// Update rewrites the scalar fields and replaces Tags and Ingredients.
	// The shortcode column is never touched.
	Update(ctx context.Context, recipe *models.Recipe) error
	// Delete removes the recipe together with its ingredient lines, tag
	// links, favorites and shopping list entries.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, int64, error)
	// ListByAuthor returns the newest recipes of an author. limit < 0 means all.
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]models.Recipe, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}
