package domain

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=6,max=128"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6,max=128"`
	}

	AvatarRequest struct {
		Avatar string `json:"avatar" validate:"required"`
	}

	TokenResponse struct {
		AuthToken string `json:"auth_token"`
	}

	UserCreatedResponse struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	// UserView is a user as seen by a particular viewer.
	UserView struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
		Avatar       string `json:"avatar"`
	}

	// SubscriptionView is a followed author with a preview of their recipes.
	SubscriptionView struct {
		UserView
		Recipes      []RecipeShortView `json:"recipes"`
		RecipesCount int64             `json:"recipes_count"`
	}

	AvatarResponse struct {
		Avatar string `json:"avatar"`
	}
)
