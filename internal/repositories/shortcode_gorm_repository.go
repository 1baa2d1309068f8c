package repositories

import (
	"context"
	"fmt"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// GORMShortcodeRepository is a GORM implementation of ShortcodeRepository.
type GORMShortcodeRepository struct {
	db *gorm.DB
}

func NewGORMShortcodeRepository(db *gorm.DB) *GORMShortcodeRepository {
	return &GORMShortcodeRepository{db: db}
}

func (r *GORMShortcodeRepository) GetShortcode(ctx context.Context, recipeID string) (*string, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).Select("id", "shortcode").First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		return nil, wrapRead(err, "recipe %s", recipeID)
	}
	return recipe.Shortcode, nil
}

func (r *GORMShortcodeRepository) ShortcodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("shortcode = ?", code).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to probe shortcode: %w", err)
	}
	return count > 0, nil
}

func (r *GORMShortcodeRepository) SetShortcode(ctx context.Context, recipeID, code string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ? AND shortcode IS NULL", recipeID).
		UpdateColumn("shortcode", code)
	if res.Error != nil {
		return false, wrapWrite(res.Error, "failed to set shortcode of recipe %s", recipeID)
	}
	return res.RowsAffected == 1, nil
}

func (r *GORMShortcodeRepository) GetByShortcode(ctx context.Context, code string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, "shortcode = ?", code).Error; err != nil {
		return nil, wrapRead(err, "shortcode %q", code)
	}
	return &recipe, nil
}
