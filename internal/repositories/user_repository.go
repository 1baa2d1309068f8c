package repositories

import (
	"context"

	"foodgram/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateAvatar(ctx context.Context, id, avatar string) error
}

// SubscriptionRepository stores who follows whom.
type SubscriptionRepository interface {
	Subscribe(ctx context.Context, userID, authorID string) error
	Unsubscribe(ctx context.Context, userID, authorID string) error
	// SubscribedTo returns the subset of authorIDs followed by userID.
	SubscribedTo(ctx context.Context, userID string, authorIDs []string) (map[string]bool, error)
	ListAuthors(ctx context.Context, userID string, offset, limit int) ([]models.User, int64, error)
}
