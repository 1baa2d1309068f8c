package repositories

import (
	"context"

	"foodgram/internal/models"
)

// CatalogRepository serves the read-only tag and ingredient catalogs.
type CatalogRepository interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id string) (*models.Tag, error)
	TagsByIDs(ctx context.Context, ids []string) ([]models.Tag, error)

	// ListIngredients filters by case-insensitive substring when name is set.
	ListIngredients(ctx context.Context, name string) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*models.Ingredient, error)
	IngredientsByIDs(ctx context.Context, ids []string) ([]models.Ingredient, error)

	// Import* insert rows that are not present yet and return how many were added.
	ImportTags(ctx context.Context, tags []models.Tag) (int64, error)
	ImportIngredients(ctx context.Context, ingredients []models.Ingredient) (int64, error)
}
