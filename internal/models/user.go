package models

import "time"

// User is an account that authors recipes and follows other authors.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:254;not null"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	Avatar    string    `json:"avatar" gorm:"size:255"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Subscription records that User follows Author.
type Subscription struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_subscription_user_author"`
	AuthorID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_subscription_user_author;index"`
	CreatedAt time.Time
}
