package services

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/repositories"
)

// CatalogService exposes tags and ingredients.
type CatalogService struct {
	repo repositories.CatalogRepository
}

func NewCatalogService(repo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *CatalogService) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	return s.repo.GetTag(ctx, id)
}

func (s *CatalogService) ListIngredients(ctx context.Context, name string) ([]models.Ingredient, error) {
	return s.repo.ListIngredients(ctx, name)
}

func (s *CatalogService) GetIngredient(ctx context.Context, id string) (*models.Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

func (s *CatalogService) ImportTags(ctx context.Context, tags []models.Tag) (int64, error) {
	return s.repo.ImportTags(ctx, tags)
}

func (s *CatalogService) ImportIngredients(ctx context.Context, ingredients []models.Ingredient) (int64, error) {
	return s.repo.ImportIngredients(ctx, ingredients)
}
