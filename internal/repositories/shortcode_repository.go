package repositories

import (
	"context"

	"foodgram/internal/models"
)

// ShortcodeRepository persists recipe short codes. The unique index on
// recipes.shortcode is the final arbiter between concurrent writers.
type ShortcodeRepository interface {
	// GetShortcode returns the recipe's code, nil while unassigned.
	GetShortcode(ctx context.Context, recipeID string) (*string, error)
	ShortcodeExists(ctx context.Context, code string) (bool, error)
	// SetShortcode stores code only if the recipe has none yet. It reports
	// false when the recipe already had a code and returns domain.ErrConflict
	// when another recipe holds code.
	SetShortcode(ctx context.Context, recipeID, code string) (bool, error)
	GetByShortcode(ctx context.Context, code string) (*models.Recipe, error)
}
