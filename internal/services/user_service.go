package services

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/logging"
	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/storage"
)

const avatarPrefix = "users"

// UserService serves profiles, avatars and subscriptions.
type UserService struct {
	users   repositories.UserRepository
	subs    repositories.SubscriptionRepository
	recipes repositories.RecipeRepository
	images  storage.ImageStore
}

func NewUserService(
	users repositories.UserRepository,
	subs repositories.SubscriptionRepository,
	recipes repositories.RecipeRepository,
	images storage.ImageStore,
) *UserService {
	return &UserService{users: users, subs: subs, recipes: recipes, images: images}
}

// NewUserView copies the public fields of u.
func NewUserView(u *models.User, subscribed bool) domain.UserView {
	return domain.UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
		Avatar:       u.Avatar,
	}
}

// Get returns user id as seen by viewerID ("" for anonymous).
func (s *UserService) Get(ctx context.Context, viewerID, id string) (*domain.UserView, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	flags, err := s.subs.SubscribedTo(ctx, viewerID, []string{user.ID})
	if err != nil {
		return nil, err
	}
	view := NewUserView(user, flags[user.ID])
	return &view, nil
}

// List returns one page of users.
func (s *UserService) List(ctx context.Context, viewerID string, page domain.PageRequest) ([]domain.UserView, int64, error) {
	users, count, err := s.users.List(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	flags, err := s.subs.SubscribedTo(ctx, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}

	views := make([]domain.UserView, len(users))
	for i := range users {
		views[i] = NewUserView(&users[i], flags[users[i].ID])
	}
	return views, count, nil
}

// Subscribe makes userID follow authorID. Following yourself or following
// twice is a conflict.
func (s *UserService) Subscribe(ctx context.Context, userID, authorID string, recipesLimit int) (*domain.SubscriptionView, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if userID == authorID {
		return nil, fmt.Errorf("cannot subscribe to yourself: %w", domain.ErrConflict)
	}
	if err := s.subs.Subscribe(ctx, userID, authorID); err != nil {
		return nil, err
	}
	return s.subscriptionView(ctx, author, recipesLimit)
}

// Unsubscribe stops userID following authorID. Not following the author
// is a conflict, unlike a missing author.
func (s *UserService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return err
	}
	err := s.subs.Unsubscribe(ctx, userID, authorID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("not subscribed to %s: %w", authorID, domain.ErrConflict)
	}
	return err
}

// Subscriptions lists the authors userID follows with up to recipesLimit
// recipes each. A negative limit returns every recipe.
func (s *UserService) Subscriptions(ctx context.Context, userID string, page domain.PageRequest, recipesLimit int) ([]domain.SubscriptionView, int64, error) {
	authors, count, err := s.subs.ListAuthors(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]domain.SubscriptionView, 0, len(authors))
	for i := range authors {
		view, err := s.subscriptionView(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, count, nil
}

func (s *UserService) subscriptionView(ctx context.Context, author *models.User, recipesLimit int) (*domain.SubscriptionView, error) {
	recipes, err := s.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	total, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	short := make([]domain.RecipeShortView, len(recipes))
	for i := range recipes {
		short[i] = domain.NewRecipeShortView(&recipes[i])
	}
	return &domain.SubscriptionView{
		UserView:     NewUserView(author, true),
		Recipes:      short,
		RecipesCount: total,
	}, nil
}

// SetAvatar stores a base64 data URI and returns the new avatar URL.
func (s *UserService) SetAvatar(ctx context.Context, userID, dataURI string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	url, err := storage.SaveDataURI(ctx, s.images, "avatar", avatarPrefix, dataURI)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	s.dropImage(ctx, user.Avatar)
	return url, nil
}

func (s *UserService) DeleteAvatar(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.UpdateAvatar(ctx, userID, ""); err != nil {
		return err
	}
	s.dropImage(ctx, user.Avatar)
	return nil
}

func (s *UserService) dropImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		logging.Warn().Err(err).Str("url", url).Msg("failed to delete old image")
	}
}
