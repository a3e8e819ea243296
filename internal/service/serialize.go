package service

import (
	"gorm.io/gorm"

	"plateful/internal/models"
	"plateful/internal/types"
)

// Viewer identity is passed around as a plain uint user ID; zero means
// anonymous. Viewer-relative flags (is_subscribed, is_favorited,
// is_in_shopping_cart) are always false for anonymous viewers.

func userResponse(db *gorm.DB, user *models.User, viewerID uint) (types.UserResponse, error) {
	resp := types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.AvatarURL,
	}
	if viewerID != 0 {
		var count int64
		err := db.Model(&models.Subscription{}).
			Where("follower_id = ? AND following_id = ?", viewerID, user.ID).
			Count(&count).Error
		if err != nil {
			return types.UserResponse{}, err
		}
		resp.IsSubscribed = count > 0
	}
	return resp, nil
}

func shortRecipeResponse(r *models.Recipe) types.RecipeShortResponse {
	return types.RecipeShortResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

// userWithRecipes builds the extended profile returned by subscription
// endpoints. recipesLimit <= 0 means no cap.
func userWithRecipes(db *gorm.DB, user *models.User, viewerID uint, recipesLimit int) (*types.UserWithRecipesResponse, error) {
	query := db.Where("author_id = ?", user.ID).Order("id DESC")
	if recipesLimit > 0 {
		query = query.Limit(recipesLimit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Recipe{}).Where("author_id = ?", user.ID).Count(&count).Error; err != nil {
		return nil, err
	}

	base, err := userResponse(db, user, viewerID)
	if err != nil {
		return nil, err
	}
	resp := &types.UserWithRecipesResponse{
		UserResponse: base,
		Recipes:      make([]types.RecipeShortResponse, 0, len(recipes)),
		RecipesCount: count,
	}
	for i := range recipes {
		resp.Recipes = append(resp.Recipes, shortRecipeResponse(&recipes[i]))
	}
	return resp, nil
}

// recipeResponse expects recipe preloaded with Author, Tags and
// Ingredients.Ingredient.
func recipeResponse(db *gorm.DB, recipe *models.Recipe, viewerID uint) (types.RecipeResponse, error) {
	author, err := userResponse(db, &recipe.Author, viewerID)
	if err != nil {
		return types.RecipeResponse{}, err
	}
	resp := types.RecipeResponse{
		ID:          recipe.ID,
		Author:      author,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Tags:        make([]types.TagResponse, 0, len(recipe.Tags)),
		Ingredients: make([]types.RecipeIngredientResponse, 0, len(recipe.Ingredients)),
	}
	for _, t := range recipe.Tags {
		resp.Tags = append(resp.Tags, types.TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	for _, ri := range recipe.Ingredients {
		resp.Ingredients = append(resp.Ingredients, types.RecipeIngredientResponse{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	if viewerID != 0 {
		var count int64
		err := db.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, recipe.ID).
			Count(&count).Error
		if err != nil {
			return types.RecipeResponse{}, err
		}
		resp.IsFavorited = count > 0

		count = 0
		err = db.Model(&models.ShoppingCart{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, recipe.ID).
			Count(&count).Error
		if err != nil {
			return types.RecipeResponse{}, err
		}
		resp.IsInShoppingCart = count > 0
	}
	return resp, nil
}
