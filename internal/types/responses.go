package types

// TokenResponse is returned by login and register.
type TokenResponse struct {
	Token string `json:"auth_token"`
}

// UserResponse is the standard user representation. IsSubscribed is
// viewer-relative and always false for anonymous viewers.
type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// UserWithRecipesResponse extends UserResponse with the author's recipes,
// optionally capped by a caller-supplied recipes_limit.
type UserWithRecipesResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// AvatarResponse echoes the stored avatar URL.
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredientResponse flattens the join row with its catalog entry.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full recipe representation.
type RecipeResponse struct {
	ID                uint                       `json:"id"`
	Tags              []TagResponse              `json:"tags"`
	Author            UserResponse               `json:"author"`
	Ingredients       []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited       bool                       `json:"is_favorited"`
	IsInShoppingCart  bool                       `json:"is_in_shopping_cart"`
	Name              string                     `json:"name"`
	Image             string                     `json:"image"`
	Text              string                     `json:"text"`
	CookingTime       int                        `json:"cooking_time"`
}

// RecipeShortResponse is the summary returned by toggle endpoints and
// embedded in subscription profiles.
type RecipeShortResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ShortLinkResponse carries the shareable URL for a recipe.
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}
