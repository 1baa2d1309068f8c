package services

import (
	"context"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/logging"
	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/storage"
)

const recipeImagePrefix = "recipes/images"

// RecipeService handles business logic related to recipes.
type RecipeService struct {
	recipes     repositories.RecipeRepository
	catalog     repositories.CatalogRepository
	collections repositories.CollectionRepository
	subs        repositories.SubscriptionRepository
	images      storage.ImageStore
	events      EventPublisher
}

// NewRecipeService creates a new RecipeService. events may be nil.
func NewRecipeService(
	recipes repositories.RecipeRepository,
	catalog repositories.CatalogRepository,
	collections repositories.CollectionRepository,
	subs repositories.SubscriptionRepository,
	images storage.ImageStore,
	events EventPublisher,
) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		catalog:     catalog,
		collections: collections,
		subs:        subs,
		images:      images,
		events:      events,
	}
}

// Create stores a new recipe by authorID. No short code is assigned here.
func (s *RecipeService) Create(ctx context.Context, authorID string, req domain.RecipeCreateRequest) (*domain.RecipeView, error) {
	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.compose(ctx, recipe, req.Tags, req.Ingredients); err != nil {
		return nil, err
	}

	image, err := storage.SaveDataURI(ctx, s.images, "image", recipeImagePrefix, req.Image)
	if err != nil {
		return nil, err
	}
	recipe.Image = image

	if err := s.recipes.Create(ctx, recipe); err != nil {
		s.dropImage(ctx, image)
		return nil, err
	}

	logging.Info().Str("recipe_id", recipe.ID).Str("author_id", authorID).Msg("recipe created")
	publish(s.events, EventRecipeCreated, map[string]interface{}{
		"recipe_id": recipe.ID,
		"author_id": authorID,
		"name":      recipe.Name,
	})
	return s.Get(ctx, authorID, recipe.ID)
}

// Update replaces the recipe's content. Only the author may update.
func (s *RecipeService) Update(ctx context.Context, viewerID, id string, req domain.RecipeUpdateRequest) (*domain.RecipeView, error) {
	existing, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != viewerID {
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrForbidden)
	}

	recipe := &models.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       existing.Image,
	}
	if err := s.compose(ctx, recipe, req.Tags, req.Ingredients); err != nil {
		return nil, err
	}

	if req.Image != "" {
		image, err := storage.SaveDataURI(ctx, s.images, "image", recipeImagePrefix, req.Image)
		if err != nil {
			return nil, err
		}
		recipe.Image = image
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		if recipe.Image != existing.Image {
			s.dropImage(ctx, recipe.Image)
		}
		return nil, err
	}
	if recipe.Image != existing.Image {
		s.dropImage(ctx, existing.Image)
	}
	return s.Get(ctx, viewerID, id)
}

// Delete removes the recipe. Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, viewerID, id string) error {
	existing, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != viewerID {
		return fmt.Errorf("recipe %s: %w", id, domain.ErrForbidden)
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	s.dropImage(ctx, existing.Image)

	logging.Info().Str("recipe_id", id).Msg("recipe deleted")
	publish(s.events, EventRecipeDeleted, map[string]interface{}{"recipe_id": id})
	return nil
}

// Get returns recipe id with flags computed for viewerID.
func (s *RecipeService) Get(ctx context.Context, viewerID, id string) (*domain.RecipeView, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.Views(ctx, viewerID, []models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns one page of recipes. Viewer-relative filters on an
// anonymous viewer match nothing.
func (s *RecipeService) List(ctx context.Context, viewerID string, q domain.RecipeListQuery) ([]domain.RecipeView, int64, error) {
	if viewerID == "" && (q.IsFavorited || q.IsInShoppingCart) {
		return []domain.RecipeView{}, 0, nil
	}

	filter := repositories.RecipeFilter{
		AuthorID: q.AuthorID,
		TagSlugs: q.TagSlugs,
		Offset:   q.Page.Offset(),
		Limit:    q.Page.Limit,
	}
	if q.IsFavorited {
		filter.FavoritedBy = viewerID
	}
	if q.IsInShoppingCart {
		filter.InCartOf = viewerID
	}

	recipes, count, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.Views(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return views, count, nil
}

// AddTo puts the recipe into one of the user's collections.
func (s *RecipeService) AddTo(ctx context.Context, kind repositories.ListKind, userID, recipeID string) (*domain.RecipeShortView, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.collections.Add(ctx, kind, userID, recipeID); err != nil {
		return nil, err
	}
	view := domain.NewRecipeShortView(recipe)
	return &view, nil
}

// RemoveFrom takes the recipe out of one of the user's collections.
func (s *RecipeService) RemoveFrom(ctx context.Context, kind repositories.ListKind, userID, recipeID string) error {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return err
	}
	return s.collections.Remove(ctx, kind, userID, recipeID)
}

// Views builds read models for viewerID. Flags are loaded in one query
// per kind.
func (s *RecipeService) Views(ctx context.Context, viewerID string, recipes []models.Recipe) ([]domain.RecipeView, error) {
	recipeIDs := make([]string, len(recipes))
	authorIDs := make([]string, 0, len(recipes))
	seen := make(map[string]bool)
	for i := range recipes {
		recipeIDs[i] = recipes[i].ID
		if !seen[recipes[i].AuthorID] {
			seen[recipes[i].AuthorID] = true
			authorIDs = append(authorIDs, recipes[i].AuthorID)
		}
	}

	favorited, err := s.collections.Contains(ctx, repositories.FavoriteList, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.collections.Contains(ctx, repositories.ShoppingCart, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.subs.SubscribedTo(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]domain.RecipeView, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		lines := make([]domain.RecipeIngredientView, len(r.Ingredients))
		for j, line := range r.Ingredients {
			lines[j] = domain.RecipeIngredientView{
				ID:              line.IngredientID,
				Name:            line.Ingredient.Name,
				MeasurementUnit: line.Ingredient.MeasurementUnit,
				Amount:          line.Amount,
			}
		}
		tags := r.Tags
		if tags == nil {
			tags = []models.Tag{}
		}
		views[i] = domain.RecipeView{
			ID:               r.ID,
			Tags:             tags,
			Author:           NewUserView(&r.Author, subscribed[r.AuthorID]),
			Ingredients:      lines,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		}
	}
	return views, nil
}

// compose validates tag and ingredient references and attaches them to
// recipe.
func (s *RecipeService) compose(ctx context.Context, recipe *models.Recipe, tagIDs []string, lines []domain.IngredientAmount) error {
	verr := &domain.ValidationError{}

	if recipe.CookingTime < models.MinCookingTime || recipe.CookingTime > models.MaxCookingTime {
		verr.Add("cooking_time", fmt.Sprintf("must be between %d and %d", models.MinCookingTime, models.MaxCookingTime))
	}

	if len(tagIDs) == 0 {
		verr.Add("tags", "at least one tag is required")
	} else if hasDuplicates(tagIDs) {
		verr.Add("tags", "tags must be unique")
	}

	ingredientIDs := make([]string, len(lines))
	for i, line := range lines {
		ingredientIDs[i] = line.ID
		if line.Amount < models.MinAmount || line.Amount > models.MaxAmount {
			verr.Add("ingredients", fmt.Sprintf("amount must be between %d and %d", models.MinAmount, models.MaxAmount))
		}
	}
	if len(lines) == 0 {
		verr.Add("ingredients", "at least one ingredient is required")
	} else if hasDuplicates(ingredientIDs) {
		verr.Add("ingredients", "ingredients must be unique")
	}

	if len(verr.Fields) > 0 {
		return verr
	}

	tags, err := s.catalog.TagsByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	if len(tags) != len(tagIDs) {
		verr.Add("tags", "unknown tag")
	}
	ingredients, err := s.catalog.IngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return err
	}
	if len(ingredients) != len(ingredientIDs) {
		verr.Add("ingredients", "unknown ingredient")
	}
	if len(verr.Fields) > 0 {
		return verr
	}

	recipe.Tags = tags
	recipe.Ingredients = make([]models.RecipeIngredient, len(lines))
	for i, line := range lines {
		recipe.Ingredients[i] = models.RecipeIngredient{IngredientID: line.ID, Amount: line.Amount}
	}
	return nil
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

func (s *RecipeService) dropImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		logging.Warn().Err(err).Str("url", url).Msg("failed to delete image")
	}
}
