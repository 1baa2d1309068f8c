package database_test

import (
	"fmt"
	"testing"

	"foodgram/internal/database"
	"foodgram/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(database.Config{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.Config{Driver: "sqlite", DSN: dsn, Silent: true})
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Migrate(db))

	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
	assert.True(t, db.Migrator().HasTable("recipe_tags"))
	assert.True(t, db.Migrator().HasIndex(&models.RecipeIngredient{}, "idx_recipe_ingredient"))
	assert.True(t, db.Migrator().HasIndex(&models.ShoppingListEntry{}, "idx_shopping_user_recipe"))
}
