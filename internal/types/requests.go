package types

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AvatarRequest carries a base64 data-URI image.
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// IngredientAmount references a catalog ingredient with a per-recipe
// amount.
type IngredientAmount struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeRequest is the write shape for create and full-replace update.
// Field-level validation beyond shape (duplicates, existence, image on
// create) lives in the recipe service so persistence never happens on a
// partially valid payload.
type RecipeRequest struct {
	Name        string             `json:"name" binding:"required"`
	Text        string             `json:"text" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Image       string             `json:"image"`
	Tags        []uint             `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`
}
