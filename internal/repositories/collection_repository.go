package repositories

import (
	"context"

	"foodgram/internal/domain"
)

// ListKind selects one of the per-user recipe collections.
type ListKind string

const (
	FavoriteList ListKind = "favorite"
	ShoppingCart ListKind = "shopping_cart"
)

// CollectionRepository manages favorites and shopping list entries.
// Adding a present entry returns domain.ErrConflict; removing an absent
// one returns domain.ErrNotFound.
type CollectionRepository interface {
	Add(ctx context.Context, kind ListKind, userID, recipeID string) error
	Remove(ctx context.Context, kind ListKind, userID, recipeID string) error
	// Contains returns the subset of recipeIDs present in the user's collection.
	Contains(ctx context.Context, kind ListKind, userID string, recipeIDs []string) (map[string]bool, error)
}

// ShoppingListRepository sums ingredient amounts across a user's shopping list.
type ShoppingListRepository interface {
	// AggregateShoppingList groups by (name, unit) and orders by name.
	AggregateShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error)
}
