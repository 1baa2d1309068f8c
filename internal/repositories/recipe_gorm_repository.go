package repositories

import (
	"context"
	"fmt"
	"time"

	"foodgram/internal/domain"
	"foodgram/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const recipeTagsTable = "recipe_tags"

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{db: db}
}

func (r *GORMRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return wrapWrite(err, "failed to create recipe")
		}
		if err := insertTagLinks(tx, recipe.ID, recipe.Tags); err != nil {
			return err
		}
		return insertIngredientLines(tx, recipe.ID, recipe.Ingredients)
	})
}

func (r *GORMRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image":        recipe.Image,
				"updated_at":   time.Now().UTC(),
			})
		if res.Error != nil {
			return wrapWrite(res.Error, "failed to update recipe %s", recipe.ID)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("recipe %s: %w", recipe.ID, domain.ErrNotFound)
		}

		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipe.ID).Error; err != nil {
			return fmt.Errorf("failed to clear tags of recipe %s: %w", recipe.ID, err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to clear ingredients of recipe %s: %w", recipe.ID, err)
		}
		if err := insertTagLinks(tx, recipe.ID, recipe.Tags); err != nil {
			return err
		}
		return insertIngredientLines(tx, recipe.ID, recipe.Ingredients)
	})
}

func insertTagLinks(tx *gorm.DB, recipeID string, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, map[string]interface{}{"recipe_id": recipeID, "tag_id": tag.ID})
	}
	if err := tx.Table(recipeTagsTable).Create(rows).Error; err != nil {
		return wrapWrite(err, "failed to link tags to recipe %s", recipeID)
	}
	return nil
}

func insertIngredientLines(tx *gorm.DB, recipeID string, lines []models.RecipeIngredient) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]models.RecipeIngredient, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, models.RecipeIngredient{
			ID:           uuid.New().String(),
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return wrapWrite(err, "failed to add ingredients to recipe %s", recipeID)
	}
	return nil
}

func (r *GORMRecipeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&models.RecipeIngredient{},
			&models.Favorite{},
			&models.ShoppingListEntry{},
		}
		for _, model := range dependents {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete dependents of recipe %s: %w", id, err)
			}
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete tags of recipe %s: %w", id, err)
		}

		res := tx.Delete(&models.Recipe{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete recipe %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

func (r *GORMRecipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.withDetails(r.db.WithContext(ctx)).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, wrapRead(err, "recipe %s", id)
	}
	return &recipe, nil
}

func (r *GORMRecipeRepository) withDetails(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") }).
		Preload("Ingredients.Ingredient")
}

// List returns one page of recipes, newest first, and the total match count.
func (r *GORMRecipeRepository) List(ctx context.Context, f RecipeFilter) ([]models.Recipe, int64, error) {
	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Recipe{})
		if f.AuthorID != "" {
			q = q.Where("recipes.author_id = ?", f.AuthorID)
		}
		if len(f.TagSlugs) > 0 {
			tagged := r.db.Table(recipeTagsTable).
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", f.TagSlugs)
			q = q.Where("recipes.id IN (?)", tagged)
		}
		if f.FavoritedBy != "" {
			favorited := r.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", f.FavoritedBy)
			q = q.Where("recipes.id IN (?)", favorited)
		}
		if f.InCartOf != "" {
			queued := r.db.Model(&models.ShoppingListEntry{}).Select("recipe_id").Where("user_id = ?", f.InCartOf)
			q = q.Where("recipes.id IN (?)", queued)
		}
		return q
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	var recipes []models.Recipe
	err := r.withDetails(filtered()).
		Order("recipes.created_at DESC").
		Order("recipes.id").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, count, nil
}

func (r *GORMRecipeRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]models.Recipe, error) {
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC")
	if limit >= 0 {
		q = q.Limit(limit)
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes of %s: %w", authorID, err)
	}
	return recipes, nil
}

func (r *GORMRecipeRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes of %s: %w", authorID, err)
	}
	return count, nil
}
