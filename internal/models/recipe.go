package models

import "time"

const (
	MinCookingTime = 1
	MaxCookingTime = 32000
	MinAmount      = 1
	MaxAmount      = 32767
)

// Recipe is the central entity. Shortcode stays nil until the first share
// link is requested and never changes afterwards.
type Recipe struct {
	ID          string             `gorm:"primaryKey;type:varchar(36)"`
	AuthorID    string             `gorm:"type:varchar(36);not null;index"`
	Author      User               `gorm:"foreignKey:AuthorID"`
	Name        string             `gorm:"size:200;not null"`
	Text        string             `gorm:"not null"`
	CookingTime int                `gorm:"not null"`
	Image       string             `gorm:"size:255"`
	Shortcode   *string            `gorm:"size:16;uniqueIndex"`
	Tags        []Tag              `gorm:"many2many:recipe_tags"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID"`
	CreatedAt   time.Time          `gorm:"index"`
	UpdatedAt   time.Time
}

// RecipeIngredient carries the amount of one ingredient in one recipe.
type RecipeIngredient struct {
	ID           string     `gorm:"primaryKey;type:varchar(36)"`
	RecipeID     string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID"`
	Amount       int        `gorm:"not null"`
}

// Favorite bookmarks a recipe for a user.
type Favorite struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe;index"`
	CreatedAt time.Time
}

// ShoppingListEntry queues a recipe's ingredients for the user's shopping list.
type ShoppingListEntry struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_shopping_user_recipe"`
	RecipeID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_shopping_user_recipe;index"`
	CreatedAt time.Time
}

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Subscription{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&Favorite{},
		&ShoppingListEntry{},
	}
}
