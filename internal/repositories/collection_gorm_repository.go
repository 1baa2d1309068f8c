package repositories

import (
	"context"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCollectionRepository implements CollectionRepository and
// ShoppingListRepository.
type GORMCollectionRepository struct {
	db *gorm.DB
}

func NewGORMCollectionRepository(db *gorm.DB) *GORMCollectionRepository {
	return &GORMCollectionRepository{db: db}
}

func modelFor(kind ListKind) (interface{}, error) {
	switch kind {
	case FavoriteList:
		return &models.Favorite{}, nil
	case ShoppingCart:
		return &models.ShoppingListEntry{}, nil
	default:
		return nil, fmt.Errorf("unknown list kind %q", kind)
	}
}

func (r *GORMCollectionRepository) Add(ctx context.Context, kind ListKind, userID, recipeID string) error {
	var row interface{}
	switch kind {
	case FavoriteList:
		row = &models.Favorite{ID: uuid.New().String(), UserID: userID, RecipeID: recipeID}
	case ShoppingCart:
		row = &models.ShoppingListEntry{ID: uuid.New().String(), UserID: userID, RecipeID: recipeID}
	default:
		return fmt.Errorf("unknown list kind %q", kind)
	}
	return wrapWrite(r.db.WithContext(ctx).Create(row).Error, "failed to add recipe %s to %s", recipeID, kind)
}

func (r *GORMCollectionRepository) Remove(ctx context.Context, kind ListKind, userID, recipeID string) error {
	model, err := modelFor(kind)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(model)
	if res.Error != nil {
		return fmt.Errorf("failed to remove recipe %s from %s: %w", recipeID, kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("recipe %s in %s: %w", recipeID, kind, domain.ErrNotFound)
	}
	return nil
}

func (r *GORMCollectionRepository) Contains(ctx context.Context, kind ListKind, userID string, recipeIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(recipeIDs))
	if userID == "" || len(recipeIDs) == 0 {
		return result, nil
	}
	model, err := modelFor(kind)
	if err != nil {
		return nil, err
	}

	var ids []string
	err = r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s flags: %w", kind, err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *GORMCollectionRepository) AggregateShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	items := []domain.ShoppingItem{}
	err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_list_entries ON shopping_list_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_list_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shopping list of %s: %w", userID, err)
	}
	return items, nil
}
