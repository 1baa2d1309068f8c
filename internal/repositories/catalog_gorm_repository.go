package repositories

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importBatchSize = 500

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{db: db}
}

func (r *GORMCatalogRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (r *GORMCatalogRepository) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, wrapRead(err, "tag %s", id)
	}
	return &tag, nil
}

func (r *GORMCatalogRepository) TagsByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	return tags, nil
}

func (r *GORMCatalogRepository) ListIngredients(ctx context.Context, name string) ([]models.Ingredient, error) {
	q := r.db.WithContext(ctx).Model(&models.Ingredient{})
	if name = strings.TrimSpace(name); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var ingredients []models.Ingredient
	if err := q.Order("name").Order("measurement_unit").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *GORMCatalogRepository) GetIngredient(ctx context.Context, id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, wrapRead(err, "ingredient %s", id)
	}
	return &ingredient, nil
}

func (r *GORMCatalogRepository) IngredientsByIDs(ctx context.Context, ids []string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *GORMCatalogRepository) ImportTags(ctx context.Context, tags []models.Tag) (int64, error) {
	for i := range tags {
		if tags[i].ID == "" {
			tags[i].ID = uuid.New().String()
		}
	}
	return r.insertIgnore(ctx, &tags, len(tags), "tags")
}

func (r *GORMCatalogRepository) ImportIngredients(ctx context.Context, ingredients []models.Ingredient) (int64, error) {
	for i := range ingredients {
		if ingredients[i].ID == "" {
			ingredients[i].ID = uuid.New().String()
		}
	}
	return r.insertIgnore(ctx, &ingredients, len(ingredients), "ingredients")
}

func (r *GORMCatalogRepository) insertIgnore(ctx context.Context, rows interface{}, n int, what string) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, importBatchSize)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to import %s: %w", what, res.Error)
	}
	return res.RowsAffected, nil
}
