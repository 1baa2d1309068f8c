package repositories

import (
	"context"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create inserts a user. Duplicate email or username yields domain.ErrConflict.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return wrapWrite(r.db.WithContext(ctx).Create(user).Error, "failed to create user")
}

func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *GORMUserRepository) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, query, arg).Error; err != nil {
		return nil, wrapRead(err, "user %s", arg)
	}
	return &user, nil
}

// List returns one page of users ordered by username.
func (r *GORMUserRepository) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Order("username").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, count, nil
}

func (r *GORMUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateColumn(ctx, id, "password", passwordHash)
}

func (r *GORMUserRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	return r.updateColumn(ctx, id, "avatar", avatar)
}

func (r *GORMUserRepository) updateColumn(ctx context.Context, id, column, value string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s of user %s: %w", column, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// GORMSubscriptionRepository is a GORM implementation of SubscriptionRepository.
type GORMSubscriptionRepository struct {
	db *gorm.DB
}

func NewGORMSubscriptionRepository(db *gorm.DB) *GORMSubscriptionRepository {
	return &GORMSubscriptionRepository{db: db}
}

func (r *GORMSubscriptionRepository) Subscribe(ctx context.Context, userID, authorID string) error {
	sub := models.Subscription{ID: uuid.New().String(), UserID: userID, AuthorID: authorID}
	return wrapWrite(r.db.WithContext(ctx).Create(&sub).Error, "failed to subscribe to %s", authorID)
}

func (r *GORMSubscriptionRepository) Unsubscribe(ctx context.Context, userID, authorID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return fmt.Errorf("failed to unsubscribe from %s: %w", authorID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("subscription to %s: %w", authorID, domain.ErrNotFound)
	}
	return nil
}

func (r *GORMSubscriptionRepository) SubscribedTo(ctx context.Context, userID string, authorIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(authorIDs))
	if userID == "" || len(authorIDs) == 0 {
		return result, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// ListAuthors returns the authors userID follows, newest subscription first.
func (r *GORMSubscriptionRepository) ListAuthors(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var authors []models.User
	err = r.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return authors, count, nil
}
