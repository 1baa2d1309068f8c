package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"foodgram/internal/database"
	"foodgram/internal/models"
	"foodgram/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open(database.Config{Driver: "sqlite", DSN: dsn, Silent: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  "hash",
	}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(context.Background(), user))
	return user
}

func createTag(t *testing.T, db *gorm.DB, slug string) models.Tag {
	t.Helper()
	tag := models.Tag{ID: uuid.New().String(), Name: slug, Slug: slug}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()
	ing := models.Ingredient{ID: uuid.New().String(), Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ing).Error)
	return ing
}

type line struct {
	ingredient models.Ingredient
	amount     int
}

func createRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, tags []models.Tag, lines ...line) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        name + " text",
		CookingTime: 10,
		Image:       "/media/recipes/images/" + name + ".png",
		Tags:        tags,
	}
	for _, l := range lines {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{IngredientID: l.ingredient.ID, Amount: l.amount})
	}
	require.NoError(t, repositories.NewGORMRecipeRepository(db).Create(context.Background(), recipe))
	return recipe
}
