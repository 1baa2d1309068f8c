package services_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-png"))

type recipeFixture struct {
	recipes     *MockRecipeRepository
	catalog     *MockCatalogRepository
	collections *MockCollectionRepository
	subs        *MockSubscriptionRepository
	images      *MockImageStore
	events      *MockEventPublisher
	service     *services.RecipeService
}

func newRecipeFixture() *recipeFixture {
	f := &recipeFixture{
		recipes:     new(MockRecipeRepository),
		catalog:     new(MockCatalogRepository),
		collections: new(MockCollectionRepository),
		subs:        new(MockSubscriptionRepository),
		images:      new(MockImageStore),
		events:      new(MockEventPublisher),
	}
	f.service = services.NewRecipeService(f.recipes, f.catalog, f.collections, f.subs, f.images, f.events)
	return f
}

// expectViews stubs the per-viewer flag lookups for a single recipe.
func (f *recipeFixture) expectViews(viewerID, recipeID, authorID string) {
	f.collections.On("Contains", repositories.FavoriteList, viewerID, []string{recipeID}).Return(map[string]bool{}, nil)
	f.collections.On("Contains", repositories.ShoppingCart, viewerID, []string{recipeID}).Return(map[string]bool{recipeID: true}, nil)
	f.subs.On("SubscribedTo", viewerID, []string{authorID}).Return(map[string]bool{}, nil)
}

func createRequest() domain.RecipeCreateRequest {
	return domain.RecipeCreateRequest{
		Ingredients: []domain.IngredientAmount{{ID: "flour", Amount: 500}, {ID: "egg", Amount: 2}},
		Tags:        []string{"breakfast"},
		Image:       pngURI,
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
	}
}

func storedRecipe() *models.Recipe {
	return &models.Recipe{
		ID:          "recipe-1",
		AuthorID:    "author-1",
		Author:      models.User{ID: "author-1", Username: "cook"},
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Image:       "/media/recipes/images/old.png",
		Tags:        []models.Tag{{ID: "breakfast", Name: "Breakfast", Slug: "breakfast"}},
		Ingredients: []models.RecipeIngredient{
			{IngredientID: "flour", Amount: 500, Ingredient: models.Ingredient{ID: "flour", Name: "Flour", MeasurementUnit: "g"}},
		},
	}
}

func TestRecipeService_Create(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	f.catalog.On("TagsByIDs", []string{"breakfast"}).Return([]models.Tag{{ID: "breakfast"}}, nil)
	f.catalog.On("IngredientsByIDs", []string{"flour", "egg"}).Return([]models.Ingredient{{ID: "flour"}, {ID: "egg"}}, nil)
	f.images.On("Save", "recipes/images", "image/png").Return("/media/recipes/images/new.png", nil)
	f.recipes.On("Create", mock.MatchedBy(func(r *models.Recipe) bool {
		return r.AuthorID == "author-1" &&
			r.Shortcode == nil &&
			r.Image == "/media/recipes/images/new.png" &&
			len(r.Tags) == 1 && len(r.Ingredients) == 2
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Recipe).ID = "recipe-1"
	}).Return(nil)
	f.events.On("PublishEvent", services.EventRecipeCreated, mock.Anything).Return(nil)
	f.recipes.On("GetByID", "recipe-1").Return(storedRecipe(), nil)
	f.expectViews("author-1", "recipe-1", "author-1")

	view, err := f.service.Create(ctx, "author-1", createRequest())

	require.NoError(t, err)
	assert.Equal(t, "recipe-1", view.ID)
	assert.True(t, view.IsInShoppingCart)
	assert.False(t, view.IsFavorited)
	require.Len(t, view.Ingredients, 1)
	assert.Equal(t, "Flour", view.Ingredients[0].Name)
	assert.Equal(t, "g", view.Ingredients[0].MeasurementUnit)
	f.recipes.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestRecipeService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.RecipeCreateRequest)
		field  string
	}{
		{"no tags", func(r *domain.RecipeCreateRequest) { r.Tags = nil }, "tags"},
		{"duplicate tags", func(r *domain.RecipeCreateRequest) { r.Tags = []string{"a", "a"} }, "tags"},
		{"no ingredients", func(r *domain.RecipeCreateRequest) { r.Ingredients = nil }, "ingredients"},
		{"duplicate ingredients", func(r *domain.RecipeCreateRequest) {
			r.Ingredients = []domain.IngredientAmount{{ID: "flour", Amount: 1}, {ID: "flour", Amount: 2}}
		}, "ingredients"},
		{"zero amount", func(r *domain.RecipeCreateRequest) { r.Ingredients[0].Amount = 0 }, "ingredients"},
		{"amount too large", func(r *domain.RecipeCreateRequest) { r.Ingredients[0].Amount = 32768 }, "ingredients"},
		{"cooking time zero", func(r *domain.RecipeCreateRequest) { r.CookingTime = 0 }, "cooking_time"},
		{"cooking time too long", func(r *domain.RecipeCreateRequest) { r.CookingTime = 32001 }, "cooking_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRecipeFixture()
			req := createRequest()
			tt.mutate(&req)

			_, err := f.service.Create(context.Background(), "author-1", req)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
			f.recipes.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestRecipeService_CreateUnknownIngredient(t *testing.T) {
	f := newRecipeFixture()
	f.catalog.On("TagsByIDs", []string{"breakfast"}).Return([]models.Tag{{ID: "breakfast"}}, nil)
	f.catalog.On("IngredientsByIDs", []string{"flour", "egg"}).Return([]models.Ingredient{{ID: "flour"}}, nil)

	_, err := f.service.Create(context.Background(), "author-1", createRequest())

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "ingredients")
	f.images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecipeService_CreateInvalidImage(t *testing.T) {
	f := newRecipeFixture()
	f.catalog.On("TagsByIDs", []string{"breakfast"}).Return([]models.Tag{{ID: "breakfast"}}, nil)
	f.catalog.On("IngredientsByIDs", []string{"flour", "egg"}).Return([]models.Ingredient{{ID: "flour"}, {ID: "egg"}}, nil)
	req := createRequest()
	req.Image = "not-a-data-uri"

	_, err := f.service.Create(context.Background(), "author-1", req)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "image")
}

func TestRecipeService_CreateDropsImageOnFailure(t *testing.T) {
	f := newRecipeFixture()
	f.catalog.On("TagsByIDs", []string{"breakfast"}).Return([]models.Tag{{ID: "breakfast"}}, nil)
	f.catalog.On("IngredientsByIDs", []string{"flour", "egg"}).Return([]models.Ingredient{{ID: "flour"}, {ID: "egg"}}, nil)
	f.images.On("Save", "recipes/images", "image/png").Return("/media/recipes/images/new.png", nil)
	f.images.On("Delete", "/media/recipes/images/new.png").Return(nil)
	f.recipes.On("Create", mock.Anything).Return(domain.ErrConflict)

	_, err := f.service.Create(context.Background(), "author-1", createRequest())

	assert.ErrorIs(t, err, domain.ErrConflict)
	f.images.AssertExpectations(t)
	f.events.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
}

func TestRecipeService_UpdateForbidden(t *testing.T) {
	f := newRecipeFixture()
	f.recipes.On("GetByID", "recipe-1").Return(storedRecipe(), nil)

	_, err := f.service.Update(context.Background(), "intruder", "recipe-1", domain.RecipeUpdateRequest{})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.recipes.AssertNotCalled(t, "Update", mock.Anything)
}

func TestRecipeService_UpdateKeepsImageWhenOmitted(t *testing.T) {
	f := newRecipeFixture()
	f.recipes.On("GetByID", "recipe-1").Return(storedRecipe(), nil)
	f.catalog.On("TagsByIDs", []string{"breakfast"}).Return([]models.Tag{{ID: "breakfast"}}, nil)
	f.catalog.On("IngredientsByIDs", []string{"flour"}).Return([]models.Ingredient{{ID: "flour"}}, nil)
	f.recipes.On("Update", mock.MatchedBy(func(r *models.Recipe) bool {
		return r.ID == "recipe-1" && r.Image == "/media/recipes/images/old.png" && r.Name == "Crepes"
	})).Return(nil)
	f.expectViews("author-1", "recipe-1", "author-1")

	_, err := f.service.Update(context.Background(), "author-1", "recipe-1", domain.RecipeUpdateRequest{
		Ingredients: []domain.IngredientAmount{{ID: "flour", Amount: 250}},
		Tags:        []string{"breakfast"},
		Name:        "Crepes",
		Text:        "Thinner.",
		CookingTime: 15,
	})

	require.NoError(t, err)
	f.recipes.AssertExpectations(t)
	f.images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.images.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestRecipeService_Delete(t *testing.T) {
	f := newRecipeFixture()
	f.recipes.On("GetByID", "recipe-1").Return(storedRecipe(), nil)

	err := f.service.Delete(context.Background(), "intruder", "recipe-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.recipes.On("Delete", "recipe-1").Return(nil)
	f.images.On("Delete", "/media/recipes/images/old.png").Return(nil)
	f.events.On("PublishEvent", services.EventRecipeDeleted, map[string]interface{}{"recipe_id": "recipe-1"}).Return(errors.New("broker down"))

	// Publish failures do not fail the request.
	require.NoError(t, f.service.Delete(context.Background(), "author-1", "recipe-1"))
	f.recipes.AssertExpectations(t)
	f.images.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestRecipeService_ListAnonymousViewerFilters(t *testing.T) {
	f := newRecipeFixture()

	views, count, err := f.service.List(context.Background(), "", domain.RecipeListQuery{
		Page:        domain.PageRequest{Page: 1, Limit: 6},
		IsFavorited: true,
	})

	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Zero(t, count)
	f.recipes.AssertNotCalled(t, "List", mock.Anything)
}

func TestRecipeService_ListBuildsFilter(t *testing.T) {
	f := newRecipeFixture()
	f.recipes.On("List", repositories.RecipeFilter{
		AuthorID: "author-1",
		TagSlugs: []string{"breakfast", "lunch"},
		InCartOf: "viewer-1",
		Offset:   6,
		Limit:    6,
	}).Return([]models.Recipe{*storedRecipe()}, int64(7), nil)
	f.expectViews("viewer-1", "recipe-1", "author-1")

	views, count, err := f.service.List(context.Background(), "viewer-1", domain.RecipeListQuery{
		Page:             domain.PageRequest{Page: 2, Limit: 6},
		AuthorID:         "author-1",
		TagSlugs:         []string{"breakfast", "lunch"},
		IsInShoppingCart: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	require.Len(t, views, 1)
	assert.True(t, views[0].IsInShoppingCart)
}

func TestRecipeService_AddTo(t *testing.T) {
	f := newRecipeFixture()
	f.recipes.On("GetByID", "recipe-1").Return(storedRecipe(), nil)
	f.collections.On("Add", repositories.FavoriteList, "user-1", "recipe-1").Return(nil).Once()

	view, err := f.service.AddTo(context.Background(), repositories.FavoriteList, "user-1", "recipe-1")
	require.NoError(t, err)
	assert.Equal(t, "recipe-1", view.ID)
	assert.Equal(t, "Pancakes", view.Name)

	f.collections.On("Add", repositories.FavoriteList, "user-1", "recipe-1").Return(domain.ErrConflict).Once()
	_, err = f.service.AddTo(context.Background(), repositories.FavoriteList, "user-1", "recipe-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRecipeService_RemoveFromMissingRecipe(t *testing.T) {
	f := newRecipeFixture()
	f.recipes.On("GetByID", "ghost").Return(nil, domain.ErrNotFound)

	err := f.service.RemoveFrom(context.Background(), repositories.ShoppingCart, "user-1", "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.collections.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}
