package services_test

import (
	"context"

	"foodgram/internal/domain"
	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	args := m.Called(id, avatar)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of repositories.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Subscribe(ctx context.Context, userID, authorID string) error {
	return m.Called(userID, authorID).Error(0)
}

func (m *MockSubscriptionRepository) Unsubscribe(ctx context.Context, userID, authorID string) error {
	return m.Called(userID, authorID).Error(0)
}

func (m *MockSubscriptionRepository) SubscribedTo(ctx context.Context, userID string, authorIDs []string) (map[string]bool, error) {
	args := m.Called(userID, authorIDs)
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockSubscriptionRepository) ListAuthors(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// MockRecipeRepository is a mock implementation of repositories.RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *MockRecipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) List(ctx context.Context, filter repositories.RecipeFilter) ([]models.Recipe, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]models.Recipe, error) {
	args := m.Called(authorID, limit)
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	args := m.Called(authorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCatalogRepository is a mock implementation of repositories.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	args := m.Called()
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockCatalogRepository) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockCatalogRepository) TagsByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockCatalogRepository) ListIngredients(ctx context.Context, name string) ([]models.Ingredient, error) {
	args := m.Called(name)
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockCatalogRepository) GetIngredient(ctx context.Context, id string) (*models.Ingredient, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockCatalogRepository) IngredientsByIDs(ctx context.Context, ids []string) ([]models.Ingredient, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockCatalogRepository) ImportTags(ctx context.Context, tags []models.Tag) (int64, error) {
	args := m.Called(tags)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) ImportIngredients(ctx context.Context, ingredients []models.Ingredient) (int64, error) {
	args := m.Called(ingredients)
	return args.Get(0).(int64), args.Error(1)
}

// MockCollectionRepository is a mock implementation of repositories.CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Add(ctx context.Context, kind repositories.ListKind, userID, recipeID string) error {
	return m.Called(kind, userID, recipeID).Error(0)
}

func (m *MockCollectionRepository) Remove(ctx context.Context, kind repositories.ListKind, userID, recipeID string) error {
	return m.Called(kind, userID, recipeID).Error(0)
}

func (m *MockCollectionRepository) Contains(ctx context.Context, kind repositories.ListKind, userID string, recipeIDs []string) (map[string]bool, error) {
	args := m.Called(kind, userID, recipeIDs)
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockShoppingListRepository is a mock implementation of repositories.ShoppingListRepository
type MockShoppingListRepository struct {
	mock.Mock
}

func (m *MockShoppingListRepository) AggregateShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShoppingItem), args.Error(1)
}

// MockImageStore is a mock implementation of storage.ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, prefix string, img *storage.Image) (string, error) {
	args := m.Called(prefix, img.ContentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, url string) error {
	return m.Called(url).Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(routingKey string, payload interface{}) error {
	return m.Called(routingKey, payload).Error(0)
}
