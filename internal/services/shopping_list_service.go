package services

import (
	"context"
	"strconv"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/metrics"
	"foodgram/internal/repositories"
)

const (
	ShoppingListHeader   = "Shopping list:\n\n"
	ShoppingListFilename = "shopping_list.txt"
)

// ShoppingListService builds the downloadable shopping list.
type ShoppingListService struct {
	repo repositories.ShoppingListRepository
}

func NewShoppingListService(repo repositories.ShoppingListRepository) *ShoppingListService {
	return &ShoppingListService{repo: repo}
}

// Aggregate returns the summed ingredients of every recipe in the user's
// shopping list, ordered by name.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	return s.repo.AggregateShoppingList(ctx, userID)
}

// Report renders the user's shopping list as plain text.
func (s *ShoppingListService) Report(ctx context.Context, userID string) (string, error) {
	items, err := s.Aggregate(ctx, userID)
	if err != nil {
		return "", err
	}
	metrics.ShoppingListDownloads.Inc()
	metrics.ShoppingListItems.Observe(float64(len(items)))
	return RenderShoppingList(items), nil
}

// RenderShoppingList formats one "• name - total unit" line per item after
// the header. An empty list renders the header alone.
func RenderShoppingList(items []domain.ShoppingItem) string {
	var b strings.Builder
	b.WriteString(ShoppingListHeader)
	for _, item := range items {
		b.WriteString("• ")
		b.WriteString(item.Name)
		b.WriteString(" - ")
		b.WriteString(strconv.FormatInt(item.TotalAmount, 10))
		b.WriteString(" ")
		b.WriteString(item.MeasurementUnit)
		b.WriteString("\n")
	}
	return b.String()
}
